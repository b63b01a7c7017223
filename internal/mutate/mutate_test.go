package mutate

import (
	"testing"
	"time"

	"remind-cli/internal/model"
)

func day(yyyy int, mm time.Month, dd int) *time.Time {
	d := time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
	return &d
}

func idsOf(col []model.Reminder) []string {
	out := make([]string, 0, len(col))
	for _, r := range col {
		out = append(out, r.ID)
	}
	return out
}

func TestCreate_AppendsAfterMaxRankOfDay(t *testing.T) {
	t.Parallel()

	due := day(2026, 8, 24)
	col := []model.Reminder{
		{ID: "a", Rank: 0, DueDate: due},
		{ID: "b", Rank: 2, DueDate: due},
		{ID: "c", Rank: 5, DueDate: due},
	}

	_, created := Create(col, CreateParams{Title: "new", DueDate: due})
	if created.Rank != 6 {
		t.Fatalf("expected rank 6 after {0,2,5}; got %d", created.Rank)
	}
}

func TestCreate_EmptyDayStartsAtZero(t *testing.T) {
	t.Parallel()

	col := []model.Reminder{
		{ID: "other-day", Rank: 9, DueDate: day(2026, 8, 20)},
	}
	_, created := Create(col, CreateParams{Title: "first of its day", DueDate: day(2026, 8, 24)})
	if created.Rank != 0 {
		t.Fatalf("expected rank 0 on an empty day; got %d", created.Rank)
	}
}

func TestCreate_UndatedBucketIsSeparate(t *testing.T) {
	t.Parallel()

	col := []model.Reminder{
		{ID: "dated", Rank: 4, DueDate: day(2026, 8, 24)},
		{ID: "undated", Rank: 1},
	}
	_, created := Create(col, CreateParams{Title: "no due date"})
	if created.Rank != 2 {
		t.Fatalf("expected rank 2 in the undated bucket; got %d", created.Rank)
	}
}

func TestCreate_ExplicitRankAndID(t *testing.T) {
	t.Parallel()

	rank := 42
	out, created := Create(nil, CreateParams{ID: "fixed", Title: "x", Rank: &rank})
	if created.ID != "fixed" || created.Rank != 42 {
		t.Fatalf("explicit id/rank not honored: %+v", created)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 reminder; got %d", len(out))
	}
}

func TestCreate_GeneratesIDAndDerivesTags(t *testing.T) {
	t.Parallel()

	_, created := Create(nil, CreateParams{Title: "water plants #home", Notes: "use the #green can"})
	if created.ID == "" {
		t.Fatalf("expected a generated id")
	}
	if len(created.Tags) != 2 || created.Tags[0] != "home" || created.Tags[1] != "green" {
		t.Fatalf("expected tags [home green]; got %v", created.Tags)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestCreate_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	col := []model.Reminder{{ID: "a", Rank: 0, Title: "untouched"}}
	Create(col, CreateParams{Title: "new"})
	if len(col) != 1 || col[0].Title != "untouched" {
		t.Fatalf("input collection was mutated: %+v", col)
	}
}

func TestUpdate_RecomputesTagsOnTitleChange(t *testing.T) {
	t.Parallel()

	col := []model.Reminder{{ID: "a", Title: "old #stale", Tags: []string{"stale"}}}
	title := "new #fresh"
	out := Update(col, "a", Fields{Title: &title, Tags: []string{"ignored"}})

	r, _ := model.Find(out, "a")
	if r.Title != "new #fresh" {
		t.Fatalf("title not updated: %q", r.Title)
	}
	if len(r.Tags) != 1 || r.Tags[0] != "fresh" {
		t.Fatalf("expected recomputed tags [fresh]; got %v", r.Tags)
	}
}

func TestUpdate_ExplicitTagsWhenTextUntouched(t *testing.T) {
	t.Parallel()

	col := []model.Reminder{{ID: "a", Title: "t #x", Tags: []string{"x"}}}
	out := Update(col, "a", Fields{Tags: []string{"manual"}})

	r, _ := model.Find(out, "a")
	if len(r.Tags) != 1 || r.Tags[0] != "manual" {
		t.Fatalf("expected explicit tags [manual]; got %v", r.Tags)
	}
}

func TestUpdate_ClearDueWins(t *testing.T) {
	t.Parallel()

	col := []model.Reminder{{ID: "a", DueDate: day(2026, 8, 24)}}
	out := Update(col, "a", Fields{DueDate: day(2026, 8, 25), ClearDue: true})

	r, _ := model.Find(out, "a")
	if r.DueDate != nil {
		t.Fatalf("expected due date cleared; got %v", r.DueDate)
	}
}

func TestUpdate_UnknownIDIsNoOp(t *testing.T) {
	t.Parallel()

	stamp := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	col := []model.Reminder{{ID: "a", Title: "keep", UpdatedAt: stamp}}
	title := "changed"
	out := Update(col, "ghost", Fields{Title: &title})

	if len(out) != 1 || out[0].Title != "keep" || !out[0].UpdatedAt.Equal(stamp) {
		t.Fatalf("unknown id should leave the collection untouched: %+v", out)
	}
}

func TestToggle_FlipsAndResorts(t *testing.T) {
	t.Parallel()

	col := []model.Reminder{
		{ID: "a", Rank: 0},
		{ID: "b", Rank: 1},
	}
	out := Toggle(col, "b")

	r, _ := model.Find(out, "b")
	if !r.Completed {
		t.Fatalf("expected b completed")
	}
	// Completed sorts before incomplete.
	if out[0].ID != "b" || out[1].ID != "a" {
		t.Fatalf("expected order [b a]; got %v", idsOf(out))
	}
}

func TestToggle_IsReversible(t *testing.T) {
	t.Parallel()

	col := []model.Reminder{{ID: "a", Rank: 3, Title: "x"}}
	out := Toggle(Toggle(col, "a"), "a")

	r, _ := model.Find(out, "a")
	if r.Completed {
		t.Fatalf("double toggle should restore incomplete")
	}
	if r.Rank != 3 {
		t.Fatalf("toggle must not touch rank; got %d", r.Rank)
	}
}

func TestToggle_UnknownIDIsNoOp(t *testing.T) {
	t.Parallel()

	col := []model.Reminder{{ID: "a"}}
	out := Toggle(col, "ghost")
	if len(out) != 1 || out[0].Completed {
		t.Fatalf("unknown id should change nothing: %+v", out)
	}
}

func TestBatchDelete_IgnoresUnknownIDs(t *testing.T) {
	t.Parallel()

	col := []model.Reminder{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	out := BatchDelete(col, []string{"b", "ghost"})

	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "c" {
		t.Fatalf("expected [a c]; got %v", idsOf(out))
	}
}

func TestBatchMove_AppendsAfterTargetDayInOrder(t *testing.T) {
	t.Parallel()

	target := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	stamp := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	col := []model.Reminder{
		{ID: "z", Rank: 1, DueDate: &target, UpdatedAt: stamp},
		{ID: "a", Rank: 0, DueDate: day(2026, 8, 24), UpdatedAt: stamp},
		{ID: "b", Rank: 1, DueDate: day(2026, 8, 24), UpdatedAt: stamp},
		{ID: "c", Rank: 2, DueDate: day(2026, 8, 24), UpdatedAt: stamp},
	}

	out := BatchMove(col, []string{"a", "b", "c"}, target)

	wantRanks := map[string]int{"a": 2, "b": 3, "c": 4}
	for id, want := range wantRanks {
		r, _ := model.Find(out, id)
		if r.Rank != want {
			t.Fatalf("%s: expected rank %d; got %d", id, want, r.Rank)
		}
		if !r.DueDate.Equal(target) {
			t.Fatalf("%s: expected due %v; got %v", id, target, r.DueDate)
		}
		if r.UpdatedAt.Equal(stamp) {
			t.Fatalf("%s: expected UpdatedAt stamped", id)
		}
	}

	z, _ := model.Find(out, "z")
	if z.Rank != 1 || !z.UpdatedAt.Equal(stamp) {
		t.Fatalf("non-moved reminder must stay untouched: %+v", z)
	}
}

func TestBatchMove_MovesCompletedToo(t *testing.T) {
	t.Parallel()

	target := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	col := []model.Reminder{
		{ID: "done", Completed: true, DueDate: day(2026, 8, 24)},
	}
	out := BatchMove(col, []string{"done"}, target)

	r, _ := model.Find(out, "done")
	if !r.DueDate.Equal(target) {
		t.Fatalf("completed reminders move too; got %v", r.DueDate)
	}
}
