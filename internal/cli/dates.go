package cli

import (
	"fmt"
	"time"
)

// sinceDateLayouts are accepted formats for --since-date, tried in order.
var sinceDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseSinceDate parses a flexibly formatted date string. Layouts without an
// explicit zone are interpreted as UTC.
func parseSinceDate(s string) (time.Time, error) {
	for _, layout := range sinceDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (try 2006-01-02 or RFC3339)", s)
}
