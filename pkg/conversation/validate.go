package conversation

import (
	"strconv"
	"time"
)

// DateLayout is the only accepted textual date format.
const DateLayout = "2006-01-02"

// validDate reports whether text is a real calendar date in YYYY-MM-DD form.
// time.Parse tolerates unpadded components, so the parse is round-tripped to
// keep the format strict.
func validDate(text string) bool {
	t, err := time.Parse(DateLayout, text)
	if err != nil {
		return false
	}
	return t.Format(DateLayout) == text
}

// parseRating parses a 1–5 integer rating; ok is false otherwise.
func parseRating(text string) (int, bool) {
	r, err := strconv.Atoi(text)
	if err != nil || r < 1 || r > 5 {
		return 0, false
	}
	return r, true
}
