// Package format holds the CLI's output helpers: strict JSON for scripted
// consumers and money/percent rendering for human-readable tables.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// WriteJSON writes strict JSON output for CLI commands.
//
// NOTE: We intentionally keep output strict JSON only. If you need to
// communicate how to fetch more data, use a `meta` object or `_hint` fields.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// Money renders cents as dollars with a thousands separator: 123456 -> "$1,234.56".
func Money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	dollars := cents / 100
	rem := cents % 100
	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(dollars), rem)
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Percent renders a percentage with up to two decimals, trimming zeros:
// 8.33 -> "8.33%", 10 -> "10%".
func Percent(p float64) string {
	s := fmt.Sprintf("%.2f", p)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + "%"
}

// Miles renders a mileage figure: 10.5 -> "10.5 mi", 100 -> "100 mi".
func Miles(m float64) string {
	s := fmt.Sprintf("%.1f", m)
	s = strings.TrimSuffix(s, ".0")
	return s + " mi"
}
