package format

import (
	"bytes"
	"testing"
)

func TestMoney(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{123456, "$1,234.56"},
		{100000000, "$1,000,000.00"},
		{-98765, "-$987.65"},
	}
	for _, tc := range cases {
		if got := Money(tc.cents); got != tc.want {
			t.Fatalf("Money(%d): expected %s, got %s", tc.cents, tc.want, got)
		}
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		p    float64
		want string
	}{
		{10, "10%"},
		{8.33, "8.33%"},
		{12.5, "12.5%"},
		{0, "0%"},
	}
	for _, tc := range cases {
		if got := Percent(tc.p); got != tc.want {
			t.Fatalf("Percent(%v): expected %s, got %s", tc.p, tc.want, got)
		}
	}
}

func TestMiles(t *testing.T) {
	if got := Miles(100); got != "100 mi" {
		t.Fatalf("Miles(100): got %s", got)
	}
	if got := Miles(10.5); got != "10.5 mi" {
		t.Fatalf("Miles(10.5): got %s", got)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]int{"a": 1}, false); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if buf.String() != "{\"a\":1}\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}

	buf.Reset()
	if err := WriteJSON(&buf, []int{1, 2}, true); err != nil {
		t.Fatalf("WriteJSON pretty: %v", err)
	}
	if buf.String() != "[\n  1,\n  2\n]\n" {
		t.Fatalf("unexpected pretty output: %q", buf.String())
	}
}
