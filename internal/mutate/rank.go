package mutate

import (
	"time"

	"remind-cli/internal/model"
)

// sameDay reports whether two instants fall on the same UTC calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// sameDuePtr reports whether two optional due dates land in the same
// day-bucket: both unscheduled, or both on the same calendar day.
func sameDuePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return sameDay(*a, *b)
}

// nextRankForDay returns the rank a newly created reminder should get on the
// given day-bucket: one greater than the maximum rank already present there,
// or 0 when the bucket is empty.
func nextRankForDay(col []model.Reminder, due *time.Time) int {
	max := -1
	for i := range col {
		if !sameDuePtr(col[i].DueDate, due) {
			continue
		}
		if col[i].Rank > max {
			max = col[i].Rank
		}
	}
	return max + 1
}
