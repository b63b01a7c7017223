package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"remind-cli/internal/config"
	"remind-cli/internal/mutate"
	"remind-cli/internal/remote"
	"remind-cli/internal/store"
)

func newSyncCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push or pull the collection against the configured remote",
	}
	cmd.AddCommand(newSyncPushCmd(app))
	cmd.AddCommand(newSyncPullCmd(app))
	return cmd
}

func remoteClient(app *App) (*remote.Client, config.Config, error) {
	cfg, err := loadConfig(app)
	if err != nil {
		return nil, config.Config{}, err
	}
	if strings.TrimSpace(cfg.Remote.BaseURL) == "" {
		return nil, cfg, errors.New("no remote configured (set remote.base_url in the config, or REMIND_REMOTE_BASE_URL)")
	}
	client := remote.New(cfg.Remote.BaseURL, cfg.Remote.InviteCode)
	if cfg.Remote.Timeout > 0 {
		client.HTTPClient.Timeout = time.Duration(cfg.Remote.Timeout) * time.Second
	}
	return client, cfg, nil
}

func newSyncPushCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload the full local collection (upsert by id)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := remoteClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st := store.Store{Dir: dir}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			col, err := st.Load(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}

			pushed := 0
			for _, r := range col {
				if err := client.Insert(ctx, r); err != nil {
					return writeErr(cmd, err)
				}
				pushed++
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"pushed": pushed},
			})
		},
	}
	return cmd
}

func newSyncPullCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Replace the local collection with the remote one",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := remoteClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
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

			col, err := client.List(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			mutate.Sort(col)
			if err := st.Save(ctx, col); err != nil {
				return writeErr(cmd, err)
			}
			if path := strings.TrimSpace(cfg.File); path != "" {
				if err := store.SaveFile(ctx, path, col); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"pulled": len(col)},
			})
		},
	}
	return cmd
}
