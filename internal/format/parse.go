package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reDateISO = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reDateUS  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// ParseDate normalizes a date to YYYY-MM-DD. Accepts ISO input as-is (after
// validation) and MM/DD/YYYY as a convenience.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty date")
	}

	if reDateISO.MatchString(s) {
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return "", fmt.Errorf("invalid date %q: %v", s, err)
		}
		return s, nil
	}

	if m := reDateUS.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		norm := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		if _, err := time.Parse("2006-01-02", norm); err != nil {
			return "", fmt.Errorf("invalid date %q: %v", s, err)
		}
		return norm, nil
	}

	return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD or MM/DD/YYYY)", s)
}

// ParseMoney converts a dollar amount ("1234.56", "$1,234.56") to cents.
func ParseMoney(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return int64(math.Round(f * 100)), nil
}

// ParsePercent parses a percentage ("40", "40%", "8.33") into a float.
func ParsePercent(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, fmt.Errorf("empty percentage")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q", s)
	}
	if f < 0 || f > 100 {
		return 0, fmt.Errorf("percentage %v out of range (0-100)", f)
	}
	return f, nil
}
