// Package view projects the sorted collection into day-buckets for display.
// It is a pure partition: ordering inside every bucket is inherited from the
// mutation engine's sort, never re-derived here.
package view

import (
	"sort"
	"time"

	"remind-cli/internal/model"
)

// List names the selectable views.
type List string

const (
	ListAll       List = "all"       // selected week, 7 day-buckets
	ListToday     List = "today"     // reminders due today
	ListScheduled List = "scheduled" // incomplete dated reminders, grouped by day asc
	ListCompleted List = "completed" // dated & completed, grouped by day desc
)

// DaySection is one day-bucket of the rendered board.
type DaySection struct {
	Label     string           `json:"label"`
	Date      time.Time        `json:"date"`
	Reminders []model.Reminder `json:"reminders"`
}

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekStart returns 00:00 UTC of the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	// time.Weekday has Sunday=0; shift so Monday=0.
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}

// SameDay reports whether two instants fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// Weekly partitions the collection into the 7 days of week's Monday-start
// week. Every bucket is present even when empty.
func Weekly(col []model.Reminder, week time.Time) []DaySection {
	start := WeekStart(week)
	out := make([]DaySection, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		sec := DaySection{Label: weekdayLabels[i], Date: day}
		for _, r := range col {
			if r.DueDate != nil && SameDay(*r.DueDate, day) {
				sec.Reminders = append(sec.Reminders, r)
			}
		}
		out = append(out, sec)
	}
	return out
}

// Today returns the single bucket for now's calendar day.
func Today(col []model.Reminder, now time.Time) DaySection {
	day := now.UTC()
	sec := DaySection{Label: "Today", Date: time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)}
	for _, r := range col {
		if r.DueDate != nil && SameDay(*r.DueDate, day) {
			sec.Reminders = append(sec.Reminders, r)
		}
	}
	return sec
}

// Scheduled groups every incomplete dated reminder by calendar day, days
// ascending. Completed reminders belong to the completed view.
func Scheduled(col []model.Reminder) []DaySection {
	return groupByDay(col, func(r model.Reminder) bool {
		return r.DueDate != nil && !r.Completed
	}, true)
}

// Completed groups every dated, completed reminder by calendar day, most
// recent day first.
func Completed(col []model.Reminder) []DaySection {
	return groupByDay(col, func(r model.Reminder) bool {
		return r.DueDate != nil && r.Completed
	}, false)
}

func groupByDay(col []model.Reminder, keep func(model.Reminder) bool, asc bool) []DaySection {
	byDay := map[time.Time]*DaySection{}
	var days []time.Time
	for _, r := range col {
		if !keep(r) {
			continue
		}
		d := r.DueDate.UTC()
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		sec, ok := byDay[day]
		if !ok {
			sec = &DaySection{Label: day.Format("01/02"), Date: day}
			byDay[day] = sec
			days = append(days, day)
		}
		sec.Reminders = append(sec.Reminders, r)
	}
	sort.Slice(days, func(i, j int) bool {
		if asc {
			return days[i].Before(days[j])
		}
		return days[j].Before(days[i])
	})
	out := make([]DaySection, 0, len(days))
	for _, day := range days {
		out = append(out, *byDay[day])
	}
	return out
}

// Filter returns the flat subset a view renders, in collection order:
// the week's reminders for all, today's for today, every incomplete dated
// reminder for scheduled and every completed one for completed.
func Filter(col []model.Reminder, list List, week, now time.Time) []model.Reminder {
	var out []model.Reminder
	switch list {
	case ListAll:
		start := WeekStart(week)
		end := start.AddDate(0, 0, 7)
		for _, r := range col {
			if r.DueDate == nil {
				continue
			}
			d := r.DueDate.UTC()
			if !d.Before(start) && d.Before(end) {
				out = append(out, r)
			}
		}
	case ListToday:
		for _, r := range col {
			if r.DueDate != nil && SameDay(*r.DueDate, now) {
				out = append(out, r)
			}
		}
	case ListScheduled:
		for _, r := range col {
			if r.DueDate != nil && !r.Completed {
				out = append(out, r)
			}
		}
	case ListCompleted:
		for _, r := range col {
			if r.Completed {
				out = append(out, r)
			}
		}
	default:
		out = append(out, col...)
	}
	return out
}
