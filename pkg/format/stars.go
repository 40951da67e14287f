// Package format renders clinic aggregates and experience details into the
// plain-text messages delivered to users.
package format

import (
	"math"
	"strings"
)

// Stars maps a 0–5 average to a fixed five-position glyph string: one full
// star per whole point, a half star when the one-decimal remainder is at
// least 0.5, empty stars for the rest.
func Stars(average float64) string {
	full := int(average)
	if full > 5 {
		full = 5
	}
	half := 0
	if full < 5 && math.Round((average-float64(full))*10) >= 5 {
		half = 1
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("★", full))
	if half == 1 {
		b.WriteString("⭑")
	}
	b.WriteString(strings.Repeat("☆", 5-full-half))
	return b.String()
}
