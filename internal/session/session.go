// Package session holds the committed in-memory collection and wires the
// pure mutation engine to the side-effect dispatcher. Each operation
// computes its result synchronously against the last-committed state,
// commits it, and only then dispatches persistence and per-item sync.
package session

import (
	"sync"
	"time"

	"remind-cli/internal/dispatch"
	"remind-cli/internal/model"
	"remind-cli/internal/mutate"
)

type Session struct {
	mu  sync.Mutex
	col []model.Reminder
	d   *dispatch.Dispatcher
}

// New starts a session from an initial collection, re-sorting it so every
// later operation starts from the canonical order.
func New(initial []model.Reminder, d *dispatch.Dispatcher) *Session {
	col := model.CloneAll(initial)
	mutate.Sort(col)
	return &Session{col: col, d: d}
}

// Snapshot returns a copy of the committed collection.
func (s *Session) Snapshot() []model.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneAll(s.col)
}

// Dispatcher exposes the side-effect channel owner (for Results/Wait).
func (s *Session) Dispatcher() *dispatch.Dispatcher {
	return s.d
}

// Create adds a reminder and returns it.
func (s *Session) Create(p mutate.CreateParams) model.Reminder {
	s.mu.Lock()
	next, created := mutate.Create(s.col, p)
	s.col = next
	s.mu.Unlock()

	s.d.Save(next)
	s.d.Insert(created)
	return created
}

// Update merges partial fields into the reminder with the given id.
// Unknown ids are a no-op, mirroring the engine.
func (s *Session) Update(id string, f mutate.Fields) (model.Reminder, bool) {
	s.mu.Lock()
	next := mutate.Update(s.col, id, f)
	changed, ok := model.Find(next, id)
	var out model.Reminder
	if ok {
		out = changed.Clone()
	}
	s.col = next
	s.mu.Unlock()

	if !ok {
		return model.Reminder{}, false
	}
	s.d.Save(next)
	s.d.Update(out)
	return out, true
}

// Toggle flips completion on the reminder with the given id.
func (s *Session) Toggle(id string) (model.Reminder, bool) {
	s.mu.Lock()
	next := mutate.Toggle(s.col, id)
	changed, ok := model.Find(next, id)
	var out model.Reminder
	if ok {
		out = changed.Clone()
	}
	s.col = next
	s.mu.Unlock()

	if !ok {
		return model.Reminder{}, false
	}
	s.d.Save(next)
	s.d.Update(out)
	return out, true
}

// Delete removes a reminder; unknown ids are a no-op.
func (s *Session) Delete(id string) {
	s.BatchDelete([]string{id})
}

// BatchDelete removes every matching reminder.
func (s *Session) BatchDelete(ids []string) {
	s.mu.Lock()
	before := len(s.col)
	next := mutate.BatchDelete(s.col, ids)
	removed := before - len(next)
	s.col = next
	s.mu.Unlock()

	if removed == 0 {
		return
	}
	s.d.Save(next)
	for _, id := range ids {
		s.d.Delete(id)
	}
}

// BatchMove reschedules the given reminders to target.
func (s *Session) BatchMove(ids []string, target time.Time) {
	s.mu.Lock()
	next := mutate.BatchMove(s.col, ids, target)
	moved := make([]model.Reminder, 0, len(ids))
	for _, id := range ids {
		if r, ok := model.Find(next, id); ok {
			moved = append(moved, r.Clone())
		}
	}
	s.col = next
	s.mu.Unlock()

	if len(moved) == 0 {
		return
	}
	s.d.Save(next)
	for _, r := range moved {
		s.d.Update(r)
	}
}

// Reorder merges a reordered subset back into the collection and syncs
// exactly the reminders the merge touched.
func (s *Session) Reorder(newOrder []model.Reminder) []model.Reminder {
	s.mu.Lock()
	res := mutate.MergeReorder(s.col, newOrder)
	s.col = res.Collection
	s.mu.Unlock()

	if len(res.Changed) == 0 {
		return res.Collection
	}
	s.d.Save(res.Collection)
	for _, r := range res.Changed {
		s.d.Update(r)
	}
	return res.Collection
}
