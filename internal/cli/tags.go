package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"remind-cli/internal/tags"
	"remind-cli/internal/view"
)

func newTagsCmd(app *App) *cobra.Command {
	var listName string
	var week string

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Per-tag completion statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := loadSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			col := sess.Snapshot()

			if strings.TrimSpace(listName) != "" {
				now := time.Now().UTC()
				weekAnchor := now
				if strings.TrimSpace(week) != "" {
					weekAnchor, err = parseDay(week)
					if err != nil {
						return writeErr(cmd, err)
					}
				}
				switch v := view.List(listName); v {
				case view.ListAll, view.ListToday, view.ListScheduled, view.ListCompleted:
					col = view.Filter(col, v, weekAnchor, now)
				default:
					return writeErr(cmd, errors.New("unknown view (expected all|today|scheduled|completed)"))
				}
			}

			stats := tags.Statistics(col)
			return writeOut(cmd, app, map[string]any{"data": stats, "count": len(stats)})
		},
	}

	cmd.Flags().StringVar(&listName, "view", "", "Scope statistics to a view (all|today|scheduled|completed)")
	cmd.Flags().StringVar(&week, "week", "", "Any day inside the week to scope to (all view only)")

	return cmd
}
