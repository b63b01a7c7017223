package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"remind-cli/internal/model"
	"remind-cli/internal/mutate"
	"remind-cli/internal/session"
	"remind-cli/internal/view"
)

type inputKind int

const (
	inputNone inputKind = iota
	inputAdd
	inputEdit
)

type appModel struct {
	sess *session.Session

	width  int
	height int

	list view.List
	week time.Time // any instant inside the displayed week
	now  func() time.Time

	sel     boardSelection
	flatSel int // selection in stacked section views

	input     textinput.Model
	inputMode inputKind
	editID    string

	status string
}

func newAppModel(sess *session.Session) appModel {
	ti := textinput.New()
	ti.Placeholder = "Title (use #tags inline)"
	ti.CharLimit = 500

	now := time.Now().UTC()
	return appModel{
		sess:  sess,
		list:  view.ListAll,
		week:  now,
		now:   func() time.Time { return time.Now().UTC() },
		input: ti,
	}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.inputMode != inputNone {
			return m.updateInput(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputMode = inputNone
		m.input.Blur()
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		switch m.inputMode {
		case inputAdd:
			if title != "" {
				day := m.selectedDay()
				created := m.sess.Create(mutate.CreateParams{Title: title, DueDate: &day})
				m.sel.ItemID = created.ID
				m.status = "added " + shortID(created.ID)
			}
		case inputEdit:
			if title != "" && m.editID != "" {
				if _, ok := m.sess.Update(m.editID, mutate.Fields{Title: &title}); ok {
					m.status = "updated " + shortID(m.editID)
				}
			}
		}
		m.inputMode = inputNone
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	col := m.sess.Snapshot()
	b := buildBoard(col, m.week)
	m.sel = b.clamp(m.sel)

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "a":
		m.inputMode = inputAdd
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case "e":
		if r, ok := m.selectedReminder(col, b); ok {
			m.inputMode = inputEdit
			m.editID = r.ID
			m.input.SetValue(r.Title)
			m.input.CursorEnd()
			m.input.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case "1":
		m.list = view.ListAll
		return m, nil
	case "2":
		m.list = view.ListToday
		m.flatSel = 0
		return m, nil
	case "3":
		m.list = view.ListScheduled
		m.flatSel = 0
		return m, nil
	case "4":
		m.list = view.ListCompleted
		m.flatSel = 0
		return m, nil

	case "t":
		m.week = m.now()
		m.list = view.ListAll
		return m, nil

	case "h":
		if m.list == view.ListAll {
			m.week = m.week.AddDate(0, 0, -7)
			m.sel.ItemID = ""
		}
		return m, nil
	case "l":
		if m.list == view.ListAll {
			m.week = m.week.AddDate(0, 0, 7)
			m.sel.ItemID = ""
		}
		return m, nil

	case "left":
		if m.list == view.ListAll && m.sel.Col > 0 {
			m.sel.Col--
			m.sel.Item = 0
			m.sel.ItemID = ""
		}
		return m, nil
	case "right":
		if m.list == view.ListAll && m.sel.Col < 6 {
			m.sel.Col++
			m.sel.Item = 0
			m.sel.ItemID = ""
		}
		return m, nil

	case "j", "down":
		if m.list == view.ListAll {
			m.sel.Item++
			m.sel.ItemID = ""
			m.sel = b.clamp(m.sel)
		} else {
			m.flatSel++
			m.clampFlat(col)
		}
		return m, nil
	case "k", "up":
		if m.list == view.ListAll {
			if m.sel.Item > 0 {
				m.sel.Item--
				m.sel.ItemID = ""
				m.sel = b.clamp(m.sel)
			}
		} else if m.flatSel > 0 {
			m.flatSel--
		}
		return m, nil

	case " ", "space":
		if r, ok := m.selectedReminder(col, b); ok {
			if _, done := m.sess.Toggle(r.ID); done {
				m.status = "toggled " + shortID(r.ID)
			}
		}
		return m, nil

	case "d":
		if r, ok := m.selectedReminder(col, b); ok {
			m.sess.Delete(r.ID)
			m.sel.ItemID = ""
			m.status = "deleted " + shortID(r.ID)
		}
		return m, nil

	case "K":
		return m.moveWithinDay(b, -1), nil
	case "J":
		return m.moveWithinDay(b, +1), nil

	case ",":
		return m.shiftDay(col, b, -1), nil
	case ".":
		return m.shiftDay(col, b, +1), nil
	}

	return m, nil
}

// moveWithinDay swaps the selected reminder with its incomplete neighbor in
// the same day column, then merges the new order back in.
func (m appModel) moveWithinDay(b board, delta int) appModel {
	if m.list != view.ListAll {
		return m
	}
	r, ok := b.selected(m.sel)
	if !ok || r.Completed {
		return m
	}
	day := b.cols[m.sel.Col]

	active := make([]model.Reminder, 0, len(day.Reminders))
	pos := -1
	for _, it := range day.Reminders {
		if it.Completed {
			continue
		}
		if it.ID == r.ID {
			pos = len(active)
		}
		active = append(active, it)
	}
	target := pos + delta
	if pos < 0 || target < 0 || target >= len(active) {
		return m
	}
	active[pos], active[target] = active[target], active[pos]

	m.sess.Reorder(active)
	m.sel.ItemID = r.ID
	m.status = "reordered"
	return m
}

// shiftDay reschedules the selected reminder one day back or forward.
func (m appModel) shiftDay(col []model.Reminder, b board, days int) appModel {
	r, ok := m.selectedReminder(col, b)
	if !ok || r.DueDate == nil {
		return m
	}
	m.sess.BatchMove([]string{r.ID}, r.DueDate.AddDate(0, 0, days))
	m.sel.ItemID = r.ID
	m.status = "moved " + shortID(r.ID)
	return m
}

func (m appModel) selectedReminder(col []model.Reminder, b board) (model.Reminder, bool) {
	if m.list == view.ListAll {
		return b.selected(m.sel)
	}
	secs := m.sections(col)
	idx := 0
	for _, sec := range secs {
		for _, r := range sec.Reminders {
			if idx == m.flatSel {
				return r, true
			}
			idx++
		}
	}
	return model.Reminder{}, false
}

func (m *appModel) clampFlat(col []model.Reminder) {
	total := 0
	for _, sec := range m.sections(col) {
		total += len(sec.Reminders)
	}
	if total == 0 {
		m.flatSel = -1
		return
	}
	if m.flatSel < 0 {
		m.flatSel = 0
	}
	if m.flatSel >= total {
		m.flatSel = total - 1
	}
}

func (m appModel) sections(col []model.Reminder) []view.DaySection {
	switch m.list {
	case view.ListToday:
		return []view.DaySection{view.Today(col, m.now())}
	case view.ListScheduled:
		return view.Scheduled(col)
	case view.ListCompleted:
		return view.Completed(col)
	default:
		return view.Weekly(col, m.week)
	}
}

func (m appModel) selectedDay() time.Time {
	start := view.WeekStart(m.week)
	if m.list != view.ListAll {
		n := m.now()
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	}
	return start.AddDate(0, 0, m.sel.Col)
}

func (m appModel) View() string {
	col := m.sess.Snapshot()

	start := view.WeekStart(m.week)
	title := fmt.Sprintf("Remind  %s  week of %s", m.list, start.Format("2006-01-02"))
	header := lipgloss.NewStyle().Bold(true).Render(title)

	var body string
	if m.list == view.ListAll {
		b := buildBoard(col, m.week)
		body = renderBoard(b, m.sel, max(m.width, 70), max(m.height-6, 8), m.now())
	} else {
		body = renderSections(m.sections(col), m.flatSel, max(m.width, 40))
	}

	var footer string
	if m.inputMode != inputNone {
		label := "add"
		if m.inputMode == inputEdit {
			label = "edit"
		}
		footer = label + " (" + m.selectedDay().Format("Mon 01/02") + "): " + m.input.View()
	} else {
		help := "a: add  e: edit  space: done  J/K: reorder  ,/.: move day  h/l: week  1-4: view  d: delete  q: quit"
		footer = lipgloss.NewStyle().Faint(true).Render(help)
		if m.status != "" {
			footer = styleMuted().Render(m.status) + "\n" + footer
		}
	}

	return strings.Join([]string{header, body, footer}, "\n\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
