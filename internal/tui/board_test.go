package tui

import (
	"testing"
	"time"

	"remind-cli/internal/model"
	"remind-cli/internal/mutate"
)

func day(yyyy int, mm time.Month, dd int) *time.Time {
	d := time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
	return &d
}

func weekOf(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}

func TestBuildBoard_SevenColumns(t *testing.T) {
	t.Parallel()

	col := []model.Reminder{
		{ID: "wed", DueDate: day(2026, 8, 26)},
	}
	b := buildBoard(col, weekOf(2026, 8, 26))
	if len(b.cols) != 7 {
		t.Fatalf("expected 7 columns; got %d", len(b.cols))
	}
	if len(b.cols[2].Reminders) != 1 || b.cols[2].Reminders[0].ID != "wed" {
		t.Fatalf("wednesday column wrong: %+v", b.cols[2].Reminders)
	}
}

func TestClamp_TracksSelectionByID(t *testing.T) {
	t.Parallel()

	due := day(2026, 8, 26)
	col := []model.Reminder{
		{ID: "a", Rank: 0, DueDate: due},
		{ID: "b", Rank: 1, DueDate: due},
	}
	mutate.Sort(col)
	b := buildBoard(col, weekOf(2026, 8, 26))

	sel := b.clamp(boardSelection{Col: 2, Item: 1})
	if sel.ItemID != "b" {
		t.Fatalf("expected selection to capture b; got %q", sel.ItemID)
	}

	// After b completes it re-sorts to the top of the column; selection must
	// follow the id, not the index.
	col2 := mutate.Toggle(col, "b")
	b2 := buildBoard(col2, weekOf(2026, 8, 26))
	sel2 := b2.clamp(sel)
	r, ok := b2.selected(sel2)
	if !ok || r.ID != "b" {
		t.Fatalf("selection should follow the id across re-sorts; got %+v", r)
	}
	if sel2.Item != 0 {
		t.Fatalf("completed b should now be the first row; got index %d", sel2.Item)
	}
}

func TestClamp_EmptyColumn(t *testing.T) {
	t.Parallel()

	b := buildBoard(nil, weekOf(2026, 8, 26))
	sel := b.clamp(boardSelection{Col: 3, Item: 5})
	if sel.Item != -1 {
		t.Fatalf("empty column should clear the item index; got %d", sel.Item)
	}
	if _, ok := b.selected(sel); ok {
		t.Fatalf("no reminder should be selected in an empty column")
	}
}

func TestClamp_OutOfRangeColumn(t *testing.T) {
	t.Parallel()

	b := buildBoard(nil, weekOf(2026, 8, 26))
	sel := b.clamp(boardSelection{Col: 99})
	if sel.Col != 6 {
		t.Fatalf("column should clamp to Sunday; got %d", sel.Col)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := truncate("short", 10); got != "short" {
		t.Fatalf("short strings pass through; got %q", got)
	}
	got := truncate("a very long reminder title", 10)
	if len([]rune(got)) > 10 {
		t.Fatalf("truncated string too wide: %q", got)
	}
	if got[len(got)-len("…"):] != "…" {
		t.Fatalf("expected ellipsis suffix; got %q", got)
	}
}
