package model

import "time"

// Reminder is the single entity the app manages.
//
// Rank orders incomplete reminders: smaller sorts earlier. Ranks are
// non-negative integers and are kept pairwise distinct by the mutation
// engine, but they are not required to be contiguous.
//
// Tags is derived from Title+Notes (first-seen order, deduplicated) and is
// recomputed whenever either text field changes.
type Reminder struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Notes     string     `json:"notes,omitempty"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	Rank      int        `json:"rank"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Clone returns a copy with its own Tags slice and DueDate pointer, so the
// copy can be mutated without aliasing the original.
func (r Reminder) Clone() Reminder {
	out := r
	if r.Tags != nil {
		out.Tags = append([]string(nil), r.Tags...)
	}
	if r.DueDate != nil {
		d := *r.DueDate
		out.DueDate = &d
	}
	return out
}

// CloneAll copies a collection. The mutation engine never mutates its input;
// every operation works on a clone and returns it as the new state.
func CloneAll(reminders []Reminder) []Reminder {
	out := make([]Reminder, len(reminders))
	for i := range reminders {
		out[i] = reminders[i].Clone()
	}
	return out
}

// Find returns a pointer into reminders for the given id.
func Find(reminders []Reminder, id string) (*Reminder, bool) {
	for i := range reminders {
		if reminders[i].ID == id {
			return &reminders[i], true
		}
	}
	return nil, false
}
