package view

import (
	"testing"
	"time"

	"remind-cli/internal/model"
)

func day(yyyy int, mm time.Month, dd int) *time.Time {
	d := time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestWeekStart_MondayBased(t *testing.T) {
	t.Parallel()

	// 2026-08-26 is a Wednesday; its week starts Monday 2026-08-24.
	wed := time.Date(2026, 8, 26, 15, 4, 5, 0, time.UTC)
	want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if got := WeekStart(wed); !got.Equal(want) {
		t.Fatalf("expected %v; got %v", want, got)
	}

	// Sunday belongs to the week of the previous Monday.
	sun := time.Date(2026, 8, 30, 1, 0, 0, 0, time.UTC)
	if got := WeekStart(sun); !got.Equal(want) {
		t.Fatalf("sunday: expected %v; got %v", want, got)
	}

	// A Monday is its own week start.
	mon := time.Date(2026, 8, 24, 23, 59, 0, 0, time.UTC)
	if got := WeekStart(mon); !got.Equal(want) {
		t.Fatalf("monday: expected %v; got %v", want, got)
	}
}

func TestWeekly_AlwaysSevenBuckets(t *testing.T) {
	t.Parallel()

	col := []model.Reminder{
		{ID: "wed", DueDate: day(2026, 8, 26)},
		{ID: "outside", DueDate: day(2026, 9, 10)},
		{ID: "undated"},
	}
	secs := Weekly(col, time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC))

	if len(secs) != 7 {
		t.Fatalf("expected 7 day sections; got %d", len(secs))
	}
	if secs[0].Label != "Mon" || secs[6].Label != "Sun" {
		t.Fatalf("expected Mon..Sun labels; got %s..%s", secs[0].Label, secs[6].Label)
	}
	if len(secs[2].Reminders) != 1 || secs[2].Reminders[0].ID != "wed" {
		t.Fatalf("wednesday bucket wrong: %+v", secs[2].Reminders)
	}
	for i, sec := range secs {
		if i == 2 {
			continue
		}
		if len(sec.Reminders) != 0 {
			t.Fatalf("bucket %d should be empty; got %+v", i, sec.Reminders)
		}
	}
}

func TestWeekly_InheritsCollectionOrder(t *testing.T) {
	t.Parallel()

	// The view must not re-sort: bucket order equals collection order even
	// when ranks would say otherwise.
	due := day(2026, 8, 24)
	col := []model.Reminder{
		{ID: "second", Rank: 5, DueDate: due},
		{ID: "first", Rank: 0, DueDate: due},
	}
	secs := Weekly(col, *due)
	got := secs[0].Reminders
	if len(got) != 2 || got[0].ID != "second" || got[1].ID != "first" {
		t.Fatalf("bucket order must inherit collection order; got %+v", got)
	}
}

func TestToday_FiltersToCalendarDay(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 26, 18, 30, 0, 0, time.UTC)
	col := []model.Reminder{
		{ID: "today-morning", DueDate: day(2026, 8, 26)},
		{ID: "tomorrow", DueDate: day(2026, 8, 27)},
		{ID: "undated"},
	}
	sec := Today(col, now)
	if len(sec.Reminders) != 1 || sec.Reminders[0].ID != "today-morning" {
		t.Fatalf("expected only today's reminder; got %+v", sec.Reminders)
	}
}

func TestScheduled_DaysAscending(t *testing.T) {
	t.Parallel()

	col := []model.Reminder{
		{ID: "late", DueDate: day(2026, 9, 2)},
		{ID: "early", DueDate: day(2026, 8, 24)},
		{ID: "mid", DueDate: day(2026, 8, 28)},
		{ID: "undated"},
	}
	secs := Scheduled(col)
	if len(secs) != 3 {
		t.Fatalf("expected 3 day sections; got %d", len(secs))
	}
	if secs[0].Reminders[0].ID != "early" || secs[1].Reminders[0].ID != "mid" || secs[2].Reminders[0].ID != "late" {
		t.Fatalf("expected days ascending; got %+v", secs)
	}
}

func TestScheduled_ExcludesCompleted(t *testing.T) {
	t.Parallel()

	col := []model.Reminder{
		{ID: "done", Completed: true, DueDate: day(2026, 8, 24)},
		{ID: "open", DueDate: day(2026, 8, 24)},
		{ID: "done-alone", Completed: true, DueDate: day(2026, 8, 25)},
	}
	secs := Scheduled(col)
	if len(secs) != 1 {
		t.Fatalf("expected 1 day section; got %d", len(secs))
	}
	if len(secs[0].Reminders) != 1 || secs[0].Reminders[0].ID != "open" {
		t.Fatalf("completed reminders must not appear in scheduled: %+v", secs[0].Reminders)
	}
}

func TestCompleted_DaysDescendingCompletedOnly(t *testing.T) {
	t.Parallel()

	col := []model.Reminder{
		{ID: "old-done", Completed: true, DueDate: day(2026, 8, 20)},
		{ID: "new-done", Completed: true, DueDate: day(2026, 8, 28)},
		{ID: "open", DueDate: day(2026, 8, 28)},
	}
	secs := Completed(col)
	if len(secs) != 2 {
		t.Fatalf("expected 2 day sections; got %d", len(secs))
	}
	if secs[0].Reminders[0].ID != "new-done" || secs[1].Reminders[0].ID != "old-done" {
		t.Fatalf("expected most recent day first; got %+v", secs)
	}
	for _, sec := range secs {
		for _, r := range sec.Reminders {
			if !r.Completed {
				t.Fatalf("completed view must only hold completed reminders: %+v", r)
			}
		}
	}
}

func TestFilter_PerView(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	col := []model.Reminder{
		{ID: "in-week", DueDate: day(2026, 8, 24)},
		{ID: "today", DueDate: day(2026, 8, 26)},
		{ID: "next-week", DueDate: day(2026, 9, 3)},
		{ID: "done-dated", Completed: true, DueDate: day(2026, 8, 25)},
		{ID: "done-undated", Completed: true},
		{ID: "undated"},
	}

	all := Filter(col, ListAll, now, now)
	if len(all) != 3 {
		t.Fatalf("all: expected the 3 reminders inside the week; got %d", len(all))
	}

	today := Filter(col, ListToday, now, now)
	if len(today) != 1 || today[0].ID != "today" {
		t.Fatalf("today: expected [today]; got %+v", today)
	}

	sched := Filter(col, ListScheduled, now, now)
	if len(sched) != 3 {
		t.Fatalf("scheduled: expected 3 incomplete dated reminders; got %d", len(sched))
	}
	for _, r := range sched {
		if r.Completed {
			t.Fatalf("scheduled must exclude completed reminders: %+v", r)
		}
	}

	done := Filter(col, ListCompleted, now, now)
	if len(done) != 2 || done[0].ID != "done-dated" || done[1].ID != "done-undated" {
		t.Fatalf("completed: expected [done-dated done-undated]; got %+v", done)
	}
}
