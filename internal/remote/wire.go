package remote

import (
	"strings"
	"time"

	"remind-cli/internal/model"
)

// wireReminder is the flattened snake_case payload the sync API speaks.
// The translation lives here and nowhere else; the engine only ever sees
// model.Reminder.
type wireReminder struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Notes     string `json:"notes,omitempty"`
	Completed bool   `json:"completed"`
	DueDate   string `json:"due_date,omitempty"`
	Tags      string `json:"tags,omitempty"` // comma-joined
	Rank      int    `json:"rank"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toWire(r model.Reminder) wireReminder {
	w := wireReminder{
		ID:        r.ID,
		Title:     r.Title,
		Notes:     r.Notes,
		Completed: r.Completed,
		Tags:      strings.Join(r.Tags, ","),
		Rank:      r.Rank,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: r.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if r.DueDate != nil {
		w.DueDate = r.DueDate.UTC().Format(time.RFC3339Nano)
	}
	return w
}

func fromWire(w wireReminder) model.Reminder {
	r := model.Reminder{
		ID:        w.ID,
		Title:     w.Title,
		Notes:     w.Notes,
		Completed: w.Completed,
		Rank:      w.Rank,
	}
	if w.DueDate != "" {
		if t, err := time.Parse(time.RFC3339Nano, w.DueDate); err == nil {
			t = t.UTC()
			r.DueDate = &t
		}
	}
	if w.Tags != "" {
		for _, tag := range strings.Split(w.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				r.Tags = append(r.Tags, tag)
			}
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, w.CreatedAt); err == nil {
		r.CreatedAt = t.UTC()
	}
	if t, err := time.Parse(time.RFC3339Nano, w.UpdatedAt); err == nil {
		r.UpdatedAt = t.UTC()
	}
	return r
}
