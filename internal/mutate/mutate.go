// Package mutate is the ordering and merge-reconciliation engine.
//
// Every operation is a pure function (collection, params) -> collection: the
// input is never mutated, the result is a fresh slice the caller commits as
// the new state. Operations referencing unknown ids degrade to no-ops, never
// errors. Side effects (persistence, remote sync) belong to the caller.
package mutate

import (
	"time"

	"github.com/google/uuid"

	"remind-cli/internal/model"
	"remind-cli/internal/tags"
)

// CreateParams describes a create operation. ID is optional (a UUID is
// generated when empty), Rank is optional (the day-bucket append rank is
// computed when nil).
type CreateParams struct {
	ID      string
	Title   string
	Notes   string
	DueDate *time.Time
	Rank    *int
}

// Create appends a new reminder and returns the re-sorted collection along
// with the created entity. Tags are derived from Title+Notes; the rank is
// either the explicit value or one past the maximum rank among reminders due
// the same day (0 when that bucket is empty).
func Create(col []model.Reminder, p CreateParams) ([]model.Reminder, model.Reminder) {
	now := time.Now().UTC()
	r := model.Reminder{
		ID:        p.ID,
		Title:     p.Title,
		Notes:     p.Notes,
		Completed: false,
		Tags:      tags.FromReminder(p.Title, p.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if p.DueDate != nil {
		d := p.DueDate.UTC()
		r.DueDate = &d
	}
	if p.Rank != nil {
		r.Rank = *p.Rank
	} else {
		r.Rank = nextRankForDay(col, r.DueDate)
	}

	out := append(model.CloneAll(col), r)
	Sort(out)
	return out, r
}

// Fields is a partial update. Nil pointers leave the field untouched.
// ClearDue removes the due date (and wins over DueDate).
//
// Tag precedence: when Title or Notes is part of the update, tags are
// recomputed from the merged text and an explicit Tags value is ignored —
// that keeps tags derivable from the text fields. Explicit Tags are honored
// only when neither text field changes.
type Fields struct {
	Title    *string
	Notes    *string
	DueDate  *time.Time
	ClearDue bool
	Tags     []string
}

// Update merges fields into the reminder with the given id and stamps
// UpdatedAt. Unknown ids return the collection unchanged. Update never
// touches Completed or Rank, so no re-sort is needed.
func Update(col []model.Reminder, id string, f Fields) []model.Reminder {
	if _, ok := model.Find(col, id); !ok {
		return col
	}
	out := model.CloneAll(col)
	r, _ := model.Find(out, id)

	if f.Title != nil {
		r.Title = *f.Title
	}
	if f.Notes != nil {
		r.Notes = *f.Notes
	}
	if f.ClearDue {
		r.DueDate = nil
	} else if f.DueDate != nil {
		d := f.DueDate.UTC()
		r.DueDate = &d
	}
	if f.Title != nil || f.Notes != nil {
		r.Tags = tags.FromReminder(r.Title, r.Notes)
	} else if f.Tags != nil {
		r.Tags = append([]string(nil), f.Tags...)
	}
	r.UpdatedAt = time.Now().UTC()
	return out
}

// Delete removes the reminder with the given id; unknown ids are a no-op.
func Delete(col []model.Reminder, id string) []model.Reminder {
	return BatchDelete(col, []string{id})
}

// BatchDelete removes every matching reminder; ids not found are ignored.
func BatchDelete(col []model.Reminder, ids []string) []model.Reminder {
	drop := map[string]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	out := make([]model.Reminder, 0, len(col))
	for i := range col {
		if drop[col[i].ID] {
			continue
		}
		out = append(out, col[i].Clone())
	}
	return out
}

// Toggle flips Completed on the matching reminder, stamps UpdatedAt and
// re-sorts the full collection. Completion changes the primary sort key, so
// the re-sort is mandatory here. Unknown ids are a no-op.
func Toggle(col []model.Reminder, id string) []model.Reminder {
	if _, ok := model.Find(col, id); !ok {
		return col
	}
	out := model.CloneAll(col)
	r, _ := model.Find(out, id)
	r.Completed = !r.Completed
	r.UpdatedAt = time.Now().UTC()
	Sort(out)
	return out
}

// BatchMove reschedules every reminder in ids to target and renumbers their
// ranks so they append, in their current relative order, after the maximum
// rank among reminders already on the target day. Reminders outside ids keep
// rank and UpdatedAt untouched. Moving items already in relative order A,B,C
// keeps them in that order.
func BatchMove(col []model.Reminder, ids []string, target time.Time) []model.Reminder {
	moving := map[string]bool{}
	for _, id := range ids {
		moving[id] = true
	}

	now := time.Now().UTC()
	day := target.UTC()
	out := model.CloneAll(col)

	// Rank base: max rank among non-moved reminders already on the target
	// day, or -1 so the first moved item gets rank 0.
	base := -1
	for i := range out {
		r := &out[i]
		if moving[r.ID] {
			continue
		}
		if r.DueDate != nil && sameDay(*r.DueDate, day) && r.Rank > base {
			base = r.Rank
		}
	}

	next := base + 1
	for i := range out {
		r := &out[i]
		if !moving[r.ID] {
			continue
		}
		d := day
		r.DueDate = &d
		r.Rank = next
		r.UpdatedAt = now
		next++
	}
	Sort(out)
	return out
}
