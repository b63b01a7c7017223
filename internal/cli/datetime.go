package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var reDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// parseDay parses a due day:
// - "today", "tomorrow", "yesterday"
// - YYYY-MM-DD
// - RFC3339 / RFC3339Nano (the calendar day is taken in UTC)
//
// The result is always 00:00 UTC of the day.
func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	now := time.Now().UTC()
	midnight := func(t time.Time) time.Time {
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}

	switch s {
	case "today":
		return midnight(now), nil
	case "tomorrow":
		return midnight(now.AddDate(0, 0, 1)), nil
	case "yesterday":
		return midnight(now.AddDate(0, 0, -1)), nil
	}

	if reDateOnly.MatchString(s) {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q", s)
		}
		return t, nil
	}

	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return midnight(ts), nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return midnight(ts), nil
	}

	return time.Time{}, fmt.Errorf("invalid date %q (expected today, tomorrow, YYYY-MM-DD, or RFC3339)", s)
}
