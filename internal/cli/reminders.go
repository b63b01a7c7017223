package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"remind-cli/internal/model"
	"remind-cli/internal/mutate"
	"remind-cli/internal/view"
)

func newAddCmd(app *App) *cobra.Command {
	var notes string
	var due string
	var rank int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a reminder (hashtags in the title/notes become tags)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := loadSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer finish(cmd, sess)

			p := mutate.CreateParams{
				Title: strings.Join(args, " "),
				Notes: notes,
			}
			if strings.TrimSpace(due) != "" {
				day, err := parseDay(due)
				if err != nil {
					return writeErr(cmd, err)
				}
				p.DueDate = &day
			}
			if cmd.Flags().Changed("rank") {
				p.Rank = &rank
			}

			created := sess.Create(p)
			return writeOut(cmd, app, map[string]any{"data": created})
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Notes (may contain #tags)")
	cmd.Flags().StringVar(&due, "due", "", "Due day (today, tomorrow, YYYY-MM-DD)")
	cmd.Flags().IntVar(&rank, "rank", 0, "Explicit rank (default: appended to the due day)")

	return cmd
}

func newListCmd(app *App) *cobra.Command {
	var listName string
	var week string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reminders grouped by day",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := loadSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			col := sess.Snapshot()
			now := time.Now().UTC()

			weekAnchor := now
			if strings.TrimSpace(week) != "" {
				weekAnchor, err = parseDay(week)
				if err != nil {
					return writeErr(cmd, err)
				}
			}

			var sections []view.DaySection
			switch view.List(listName) {
			case view.ListAll:
				sections = view.Weekly(col, weekAnchor)
			case view.ListToday:
				sections = []view.DaySection{view.Today(col, now)}
			case view.ListScheduled:
				sections = view.Scheduled(col)
			case view.ListCompleted:
				sections = view.Completed(col)
			default:
				return writeErr(cmd, errors.New("unknown view (expected all|today|scheduled|completed)"))
			}

			total := 0
			for _, sec := range sections {
				total += len(sec.Reminders)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"view":     listName,
					"sections": sections,
				},
				"count": total,
			})
		},
	}

	cmd.Flags().StringVar(&listName, "view", "all", "View (all|today|scheduled|completed)")
	cmd.Flags().StringVar(&week, "week", "", "Any day inside the week to show (all view only)")

	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := loadSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			r, ok := model.Find(sess.Snapshot(), id)
			if !ok {
				return writeErr(cmd, errNotFound("reminder", id))
			}
			return writeOut(cmd, app, map[string]any{"data": r})
		},
	}
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id> [id...]",
		Short: "Toggle completion",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := loadSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer finish(cmd, sess)

			var toggled []model.Reminder
			for _, id := range args {
				r, ok := sess.Toggle(strings.TrimSpace(id))
				if !ok {
					return writeErr(cmd, errNotFound("reminder", id))
				}
				toggled = append(toggled, r)
			}
			return writeOut(cmd, app, map[string]any{"data": toggled, "count": len(toggled)})
		},
	}
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var title string
	var notes string
	var due string
	var clearDue bool
	var tagList []string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit fields of a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := loadSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer finish(cmd, sess)

			var f mutate.Fields
			if cmd.Flags().Changed("title") {
				f.Title = &title
			}
			if cmd.Flags().Changed("notes") {
				f.Notes = &notes
			}
			if clearDue {
				f.ClearDue = true
			} else if strings.TrimSpace(due) != "" {
				day, err := parseDay(due)
				if err != nil {
					return writeErr(cmd, err)
				}
				f.DueDate = &day
			}
			if cmd.Flags().Changed("tags") {
				f.Tags = tagList
			}
			if f.Title == nil && f.Notes == nil && f.DueDate == nil && !f.ClearDue && f.Tags == nil {
				return writeErr(cmd, errors.New("nothing to change (pass --title, --notes, --due, --clear-due, or --tags)"))
			}

			id := strings.TrimSpace(args[0])
			r, ok := sess.Update(id, f)
			if !ok {
				return writeErr(cmd, errNotFound("reminder", id))
			}
			return writeOut(cmd, app, map[string]any{"data": r})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")
	cmd.Flags().StringVar(&due, "due", "", "New due day (today, tomorrow, YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due day")
	cmd.Flags().StringSliceVar(&tagList, "tags", nil, "Explicit tags (overrides hashtag extraction)")

	return cmd
}

func newRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id> [id...]",
		Short: "Delete reminders",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := loadSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer finish(cmd, sess)

			ids := make([]string, 0, len(args))
			for _, a := range args {
				ids = append(ids, strings.TrimSpace(a))
			}
			before := len(sess.Snapshot())
			sess.BatchDelete(ids)
			removed := before - len(sess.Snapshot())
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"removed": removed}})
		},
	}
	return cmd
}
