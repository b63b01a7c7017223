package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"remind-cli/internal/model"
)

func newMoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <date> <id> [id...]",
		Short: "Reschedule reminders onto a day (appended after its existing items)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := loadSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer finish(cmd, sess)

			target, err := parseDay(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ids := make([]string, 0, len(args)-1)
			col := sess.Snapshot()
			for _, a := range args[1:] {
				id := strings.TrimSpace(a)
				if _, ok := model.Find(col, id); !ok {
					return writeErr(cmd, errNotFound("reminder", id))
				}
				ids = append(ids, id)
			}

			sess.BatchMove(ids, target)

			moved := make([]model.Reminder, 0, len(ids))
			after := sess.Snapshot()
			for _, id := range ids {
				if r, ok := model.Find(after, id); ok {
					moved = append(moved, *r)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": moved, "count": len(moved)})
		},
	}
	return cmd
}

func newReorderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder <id> <id> [id...]",
		Short: "Reassign ranks so the given reminders appear in this order",
		Long: strings.TrimSpace(`
Reassign ranks so the given reminders appear in the given order.

The merge is partial: reminders not listed keep their ranks, listed
reminders already in place are left untouched, and only reminders whose
rank actually changed are re-stamped and synced.
`),
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := loadSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer finish(cmd, sess)

			col := sess.Snapshot()
			newOrder := make([]model.Reminder, 0, len(args))
			for _, a := range args {
				id := strings.TrimSpace(a)
				r, ok := model.Find(col, id)
				if !ok {
					return writeErr(cmd, errNotFound("reminder", id))
				}
				newOrder = append(newOrder, *r)
			}

			before := snapshotRanks(col)
			merged := sess.Reorder(newOrder)

			changed := 0
			for _, r := range merged {
				if rank, ok := before[r.ID]; !ok || rank != r.Rank {
					changed++
				}
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"changed": changed, "total": len(merged)},
			})
		},
	}
	return cmd
}

func snapshotRanks(col []model.Reminder) map[string]int {
	out := make(map[string]int, len(col))
	for _, r := range col {
		out[r.ID] = r.Rank
	}
	return out
}
