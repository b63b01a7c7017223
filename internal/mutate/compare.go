package mutate

import (
	"sort"

	"remind-cli/internal/model"
)

// Compare is the single ordering primitive for every list the app shows:
//
//  1. completed reminders sort before incomplete ones
//  2. among completed, UpdatedAt ascending (most recently completed last)
//  3. among incomplete, Rank ascending
//
// Ties compare equal; Sort is stable so equal elements keep their relative
// order. Compare is total: it never fails for any pair of reminders.
func Compare(a, b model.Reminder) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return -1
		}
		return 1
	}
	if a.Completed {
		if a.UpdatedAt.Before(b.UpdatedAt) {
			return -1
		}
		if a.UpdatedAt.After(b.UpdatedAt) {
			return 1
		}
		return 0
	}
	if a.Rank != b.Rank {
		if a.Rank < b.Rank {
			return -1
		}
		return 1
	}
	return 0
}

// Sort applies Compare as a full stable sort, in place.
//
// Every mutation that can change Completed or Rank runs this before
// returning, so all call sites observe one consistent global order instead
// of computing insertion points locally.
func Sort(reminders []model.Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		return Compare(reminders[i], reminders[j]) < 0
	})
}
