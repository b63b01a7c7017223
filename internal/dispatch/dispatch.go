// Package dispatch runs persistence and remote sync as fire-and-forget side
// effects after a mutation has already committed in memory. Outcomes are
// published on a result channel the caller may observe (or ignore); nothing
// here ever blocks a mutation or feeds back into engine state.
package dispatch

import (
	"context"
	"sync"
	"time"

	"remind-cli/internal/model"
	"remind-cli/internal/remote"
	"remind-cli/internal/store"
)

// Op names a side effect kind.
type Op string

const (
	OpSave   Op = "save"
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Result is one completed side effect. Err is nil on success.
type Result struct {
	Op  Op
	ID  string // reminder id for remote ops, empty for save
	Err error
}

// Dispatcher owns the local store and the optional remote client.
type Dispatcher struct {
	store   store.Store
	client  *remote.Client // nil when no remote is configured
	mirror  string         // optional JSON file every save is mirrored to
	timeout time.Duration

	results chan Result
	wg      sync.WaitGroup
}

// New builds a dispatcher. client may be nil for local-only setups.
func New(st store.Store, client *remote.Client) *Dispatcher {
	return &Dispatcher{
		store:   st,
		client:  client,
		timeout: 15 * time.Second,
		results: make(chan Result, 64),
	}
}

// SetMirror makes every Save also write the collection to a JSON file.
func (d *Dispatcher) SetMirror(path string) {
	d.mirror = path
}

// Results is the observation channel. Delivery is best-effort: when nobody
// drains the channel, results are dropped rather than blocking a dispatch.
func (d *Dispatcher) Results() <-chan Result {
	return d.results
}

// Wait blocks until every dispatched side effect so far has finished.
// Used by CLI commands that must not exit mid-write, and by tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) publish(res Result) {
	select {
	case d.results <- res:
	default:
	}
}

func (d *Dispatcher) run(op Op, id string, fn func(context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		d.publish(Result{Op: op, ID: id, Err: fn(ctx)})
	}()
}

// Save persists the full collection locally.
func (d *Dispatcher) Save(col []model.Reminder) {
	snapshot := model.CloneAll(col)
	d.run(OpSave, "", func(ctx context.Context) error {
		if err := d.store.Save(ctx, snapshot); err != nil {
			return err
		}
		if d.mirror != "" {
			return store.SaveFile(ctx, d.mirror, snapshot)
		}
		return nil
	})
}

// Insert pushes a created reminder to the remote, when one is configured.
func (d *Dispatcher) Insert(r model.Reminder) {
	if d.client == nil {
		return
	}
	r = r.Clone()
	d.run(OpInsert, r.ID, func(ctx context.Context) error {
		return d.client.Insert(ctx, r)
	})
}

// Update pushes a mutated reminder to the remote.
func (d *Dispatcher) Update(r model.Reminder) {
	if d.client == nil {
		return
	}
	r = r.Clone()
	d.run(OpUpdate, r.ID, func(ctx context.Context) error {
		return d.client.Update(ctx, r)
	})
}

// Delete removes a reminder remotely.
func (d *Dispatcher) Delete(id string) {
	if d.client == nil {
		return
	}
	d.run(OpDelete, id, func(ctx context.Context) error {
		return d.client.Delete(ctx, id)
	})
}
