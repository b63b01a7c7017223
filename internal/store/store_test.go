package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"remind-cli/internal/model"
)

func sampleCollection() []model.Reminder {
	due := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	return []model.Reminder{
		{
			ID: "r1", Title: "water plants #home", Notes: "back porch too",
			Tags: []string{"home"}, Rank: 0, DueDate: &due,
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "r2", Title: "file taxes", Completed: true, Rank: 1,
			CreatedAt: created, UpdatedAt: created.Add(time.Hour),
		},
	}
}

func assertSameCollection(t *testing.T, want, got []model.Reminder) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d reminders; got %d", len(want), len(got))
	}
	byID := map[string]model.Reminder{}
	for _, r := range got {
		byID[r.ID] = r
	}
	for _, w := range want {
		g, ok := byID[w.ID]
		if !ok {
			t.Fatalf("missing reminder %s", w.ID)
		}
		if g.Title != w.Title || g.Notes != w.Notes || g.Completed != w.Completed || g.Rank != w.Rank {
			t.Fatalf("%s: fields differ: want %+v got %+v", w.ID, w, g)
		}
		if (g.DueDate == nil) != (w.DueDate == nil) {
			t.Fatalf("%s: due date presence differs", w.ID)
		}
		if g.DueDate != nil && !g.DueDate.Equal(*w.DueDate) {
			t.Fatalf("%s: due date differs: want %v got %v", w.ID, w.DueDate, g.DueDate)
		}
		if !g.CreatedAt.Equal(w.CreatedAt) || !g.UpdatedAt.Equal(w.UpdatedAt) {
			t.Fatalf("%s: timestamps differ: want %v/%v got %v/%v", w.ID, w.CreatedAt, w.UpdatedAt, g.CreatedAt, g.UpdatedAt)
		}
		if len(g.Tags) != len(w.Tags) {
			t.Fatalf("%s: tags differ: want %v got %v", w.ID, w.Tags, g.Tags)
		}
		for i := range w.Tags {
			if g.Tags[i] != w.Tags[i] {
				t.Fatalf("%s: tags differ: want %v got %v", w.ID, w.Tags, g.Tags)
			}
		}
	}
}

func TestSQLite_RoundTrip(t *testing.T) {
	t.Parallel()

	st := Store{Dir: t.TempDir()}
	ctx := context.Background()
	want := sampleCollection()

	if err := st.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertSameCollection(t, want, got)
}

func TestSQLite_FreshStoreIsEmpty(t *testing.T) {
	t.Parallel()

	st := Store{Dir: t.TempDir()}
	got, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection; got %d", len(got))
	}
}

func TestSQLite_SaveReplaces(t *testing.T) {
	t.Parallel()

	st := Store{Dir: t.TempDir()}
	ctx := context.Background()

	if err := st.Save(ctx, sampleCollection()); err != nil {
		t.Fatalf("save: %v", err)
	}
	smaller := sampleCollection()[:1]
	if err := st.Save(ctx, smaller); err != nil {
		t.Fatalf("resave: %v", err)
	}
	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertSameCollection(t, smaller, got)
}

func TestFile_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "reminders.json")
	ctx := context.Background()
	want := sampleCollection()

	if err := SaveFile(ctx, path, want); err != nil {
		t.Fatalf("save file: %v", err)
	}
	got, err := LoadFile(ctx, path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	assertSameCollection(t, want, got)
}

func TestFile_MissingIsEmpty(t *testing.T) {
	t.Parallel()

	got, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("missing file should read as empty; got %d", len(got))
	}
}

func TestDiscoverDir_WalksUp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	remindDir := filepath.Join(root, ".remind")
	if err := os.MkdirAll(remindDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	deep := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatalf("mkdir deep: %v", err)
	}

	found, ok := DiscoverDir(deep)
	if !ok || found != remindDir {
		t.Fatalf("expected %s; got %s (ok=%v)", remindDir, found, ok)
	}
}

func TestDiscoverDir_NotFound(t *testing.T) {
	t.Parallel()

	if _, ok := DiscoverDir(t.TempDir()); ok {
		t.Fatalf("expected no discovery in a bare temp dir")
	}
}
