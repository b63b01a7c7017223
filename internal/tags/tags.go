package tags

import (
	"regexp"
	"strings"

	"remind-cli/internal/model"
)

// Tags are written inline as #name and end at the next whitespace.
var tagPattern = regexp.MustCompile(`#(\S+)`)

// Extract scans text for #tag tokens. Order is first-seen, duplicates are
// dropped.
func Extract(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, m := range tagPattern.FindAllStringSubmatch(text, -1) {
		tag := strings.TrimSpace(m[1])
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// FromReminder derives the tag set for a reminder: title tags first, then
// notes tags, deduplicated keeping the first occurrence.
func FromReminder(title, notes string) []string {
	seen := map[string]bool{}
	var out []string
	for _, tag := range append(Extract(title), Extract(notes)...) {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// Stat aggregates per-tag usage across a collection.
type Stat struct {
	Tag       string  `json:"tag"`
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Rate      float64 `json:"rate"` // completion percentage, 0-100
}

// Statistics computes per-tag totals, completed counts and completion rates
// in a single pass. Results are ordered by first appearance in the
// collection.
func Statistics(reminders []model.Reminder) []Stat {
	byTag := map[string]*Stat{}
	var order []string
	for _, r := range reminders {
		for _, tag := range r.Tags {
			st, ok := byTag[tag]
			if !ok {
				st = &Stat{Tag: tag}
				byTag[tag] = st
				order = append(order, tag)
			}
			st.Total++
			if r.Completed {
				st.Completed++
			}
		}
	}
	out := make([]Stat, 0, len(order))
	for _, tag := range order {
		st := byTag[tag]
		if st.Total > 0 {
			st.Rate = float64(st.Completed) / float64(st.Total) * 100
		}
		out = append(out, *st)
	}
	return out
}
