package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"remind-cli/internal/model"
	"remind-cli/internal/mutate"
	"remind-cli/internal/store"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the collection to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(out) == "" {
				return writeErr(cmd, errors.New("missing --out"))
			}
			sess, _, err := loadSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			col := sess.Snapshot()
			if err := store.SaveFile(cmd.Context(), out, col); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"path": out, "exported": len(col)},
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Destination JSON file")

	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var merge bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load reminders from a JSON file",
		Long: strings.TrimSpace(`
Load reminders from a JSON file.

By default the stored collection is replaced. With --merge, imported
reminders are upserted by id into the existing collection instead.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st := store.Store{Dir: dir}
			if err := st.Ensure(); err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			imported, err := store.LoadFile(ctx, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			col := imported
			if merge {
				existing, err := st.Load(ctx)
				if err != nil {
					return writeErr(cmd, err)
				}
				byID := make(map[string]int, len(existing))
				for i, r := range existing {
					byID[r.ID] = i
				}
				col = model.CloneAll(existing)
				for _, r := range imported {
					if i, ok := byID[r.ID]; ok {
						col[i] = r
					} else {
						col = append(col, r)
					}
				}
			}
			mutate.Sort(col)

			if err := st.Save(ctx, col); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"imported": len(imported), "total": len(col)},
			})
		},
	}

	cmd.Flags().BoolVar(&merge, "merge", false, "Upsert by id instead of replacing the collection")

	return cmd
}
