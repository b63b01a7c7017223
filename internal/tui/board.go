package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"remind-cli/internal/model"
	"remind-cli/internal/view"
)

type boardSelection struct {
	Col  int
	Item int
	// ItemID is the stable selected reminder id (preferred over Item index for
	// tracking focus across re-sorts and completion changes).
	ItemID string
}

type board struct {
	cols []view.DaySection
}

func buildBoard(col []model.Reminder, week time.Time) board {
	return board{cols: view.Weekly(col, week)}
}

func (b board) indexOfItemID(id string) (colIdx, itemIdx int, ok bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, 0, false
	}
	for ci, c := range b.cols {
		for ii, r := range c.Reminders {
			if r.ID == id {
				return ci, ii, true
			}
		}
	}
	return 0, 0, false
}

func (b board) clamp(sel boardSelection) boardSelection {
	if len(b.cols) == 0 {
		return boardSelection{Col: 0, Item: -1}
	}

	// Prefer stable selection by ID when present.
	if ci, ii, ok := b.indexOfItemID(sel.ItemID); ok {
		sel.Col = ci
		sel.Item = ii
	} else {
		sel.ItemID = ""
	}

	if sel.Col < 0 {
		sel.Col = 0
	}
	if sel.Col >= len(b.cols) {
		sel.Col = len(b.cols) - 1
	}

	nItems := len(b.cols[sel.Col].Reminders)
	if nItems == 0 {
		sel.Item = -1
		return sel
	}
	if sel.Item < 0 {
		sel.Item = 0
	}
	if sel.Item >= nItems {
		sel.Item = nItems - 1
	}
	sel.ItemID = b.cols[sel.Col].Reminders[sel.Item].ID
	return sel
}

func (b board) selected(sel boardSelection) (model.Reminder, bool) {
	sel = b.clamp(sel)
	if sel.Col < 0 || sel.Col >= len(b.cols) {
		return model.Reminder{}, false
	}
	if sel.Item < 0 || sel.Item >= len(b.cols[sel.Col].Reminders) {
		return model.Reminder{}, false
	}
	return b.cols[sel.Col].Reminders[sel.Item], true
}

// renderBoard draws the 7 day columns side by side.
func renderBoard(b board, sel boardSelection, width, height int, now time.Time) string {
	n := len(b.cols)
	if n == 0 || width <= 0 {
		return ""
	}
	sel = b.clamp(sel)

	gap := 1
	avail := width - gap*(n-1)
	if avail < n {
		avail = n
	}
	colW := avail / n
	if colW < 10 {
		colW = 10
	}
	innerW := colW - 2 // left+right padding
	if innerW < 1 {
		innerW = 1
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Width(colW).Padding(0, 1).
		Foreground(colorSurfaceFg).Background(colorControlBg)
	headerTodayStyle := headerStyle.Copy().Background(colorTodayBg).Foreground(colorAccent)
	headerSelStyle := headerStyle.Copy().Foreground(colorSelectedFg).Background(colorSelectedBg)

	// Whitespace defines the rows, not borders.
	itemStyle := lipgloss.NewStyle().Width(colW).Padding(0, 1)
	itemSelStyle := itemStyle.Copy().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	doneStyle := itemStyle.Copy().Foreground(colorDoneFg).Strikethrough(true)

	rendered := make([]string, 0, n)
	for ci, c := range b.cols {
		var rows []string

		header := c.Label + " " + c.Date.Format("01/02")
		switch {
		case ci == sel.Col:
			rows = append(rows, headerSelStyle.Render(truncate(header, innerW)))
		case view.SameDay(c.Date, now):
			rows = append(rows, headerTodayStyle.Render(truncate(header, innerW)))
		default:
			rows = append(rows, headerStyle.Render(truncate(header, innerW)))
		}

		if len(c.Reminders) == 0 {
			rows = append(rows, styleMuted().Width(colW).Padding(0, 1).Render("-"))
		}
		for ii, r := range c.Reminders {
			line := checkbox(r.Completed) + " " + r.Title
			if len(r.Tags) > 0 {
				line += " #" + strings.Join(r.Tags, " #")
			}
			line = truncate(line, innerW)
			switch {
			case ci == sel.Col && ii == sel.Item:
				rows = append(rows, itemSelStyle.Render(line))
			case r.Completed:
				rows = append(rows, doneStyle.Render(line))
			default:
				rows = append(rows, itemStyle.Render(line))
			}
		}

		colBody := strings.Join(rows, "\n")
		rendered = append(rendered, lipgloss.NewStyle().Width(colW).MaxHeight(height).Render(colBody))
	}

	sep := strings.Repeat(" ", gap)
	joined := make([]string, 0, 2*n-1)
	for i, col := range rendered {
		if i > 0 {
			joined = append(joined, sep)
		}
		joined = append(joined, col)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joined...)
}

// renderSections draws day sections stacked vertically (today / scheduled /
// completed views). flatSel is the selection index counted across all
// reminders in section order; pass -1 for no selection.
func renderSections(secs []view.DaySection, flatSel, width int) string {
	if width < 20 {
		width = 20
	}
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Background(colorControlBg).Width(width)
	itemStyle := lipgloss.NewStyle().Width(width).Padding(0, 1)
	itemSelStyle := itemStyle.Copy().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	doneStyle := itemStyle.Copy().Foreground(colorDoneFg).Strikethrough(true)

	var rows []string
	idx := 0
	for _, sec := range secs {
		rows = append(rows, headerStyle.Render(truncate(sec.Label+" "+sec.Date.Format("2006-01-02"), width)))
		if len(sec.Reminders) == 0 {
			rows = append(rows, styleMuted().Padding(0, 1).Render("no reminders"))
		}
		for _, r := range sec.Reminders {
			line := checkbox(r.Completed) + " " + r.Title
			if r.Notes != "" {
				line += "  " + r.Notes
			}
			line = truncate(line, width-2)
			switch {
			case idx == flatSel:
				rows = append(rows, itemSelStyle.Render(line))
			case r.Completed:
				rows = append(rows, doneStyle.Render(line))
			default:
				rows = append(rows, itemStyle.Render(line))
			}
			idx++
		}
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func truncate(s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= maxW {
		return s
	}
	if maxW <= 1 {
		return xansi.Cut(s, 0, maxW)
	}
	return xansi.Cut(s, 0, maxW-1) + "…"
}
