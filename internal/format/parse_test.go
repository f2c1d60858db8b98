package format

import "testing"

func TestParseDate(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2024-03-10", "2024-03-10", false},
		{" 2024-03-10 ", "2024-03-10", false},
		{"3/10/2024", "2024-03-10", false},
		{"12/1/2024", "2024-12-01", false},
		{"2024-13-01", "", true},
		{"13/40/2024", "", true},
		{"March 10", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseDate(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseDate(%q): expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1234.56", 123456, false},
		{"$1,234.56", 123456, false},
		{"2500", 250000, false},
		{"0.1", 10, false},
		{"", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseMoney(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseMoney(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMoney(%q): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestParsePercent(t *testing.T) {
	if got, err := ParsePercent("40%"); err != nil || got != 40 {
		t.Fatalf("ParsePercent(40%%): got %v, %v", got, err)
	}
	if got, err := ParsePercent("8.33"); err != nil || got != 8.33 {
		t.Fatalf("ParsePercent(8.33): got %v, %v", got, err)
	}
	if _, err := ParsePercent("120"); err == nil {
		t.Fatalf("expected out-of-range error")
	}
	if _, err := ParsePercent(""); err == nil {
		t.Fatalf("expected empty error")
	}
}
