package format

import (
	"fmt"
	"strings"

	"github.com/dandanapp/dandanbot/pkg/models"
)

// ProvinceSummary renders one line per clinic in the order the store returned
// them (best average first): name, city, star glyphs, experience count.
func ProvinceSummary(stats []models.ClinicStats) string {
	var b strings.Builder
	for _, st := range stats {
		fmt.Fprintf(&b, "%s (%s) %s (%d)\n", st.Name, st.City, Stars(st.Average), st.Count)
	}
	return b.String()
}
