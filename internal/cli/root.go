package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"remind-cli/internal/config"
	"remind-cli/internal/dispatch"
	"remind-cli/internal/format"
	"remind-cli/internal/remote"
	"remind-cli/internal/session"
	"remind-cli/internal/store"
	"remind-cli/internal/tui"
)

type App struct {
	Dir        string
	ConfigPath string
	PrettyJSON bool

	cfg       config.Config
	cfgLoaded bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "remind",
		Short:        "Remind (local-first) reminder CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive weekly board
  remind

  # Scriptable commands
  remind add "Water plants #home" --due today
  remind list --view today
  remind done <id>
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("REMIND_DIR", ""), "Path to store dir (default: nearest .remind, else ~/.remind)")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("REMIND_CONFIG", ""), "Path to config file (default: ~/.remind/config.yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newReorderCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newSyncCmd(app))
	cmd.AddCommand(newWebCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	sess, _, err := loadSession(app)
	if err != nil {
		return err
	}
	defer sess.Dispatcher().Wait()
	return tui.Run(sess)
}

func loadConfig(app *App) (config.Config, error) {
	if app.cfgLoaded {
		return app.cfg, nil
	}
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	app.cfg = cfg
	app.cfgLoaded = true
	return cfg, nil
}

func resolveDir(app *App) (string, error) {
	if app.Dir != "" {
		return app.Dir, nil
	}
	cfg, err := loadConfig(app)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(cfg.DataDir) != "" {
		return strings.TrimSpace(cfg.DataDir), nil
	}
	return store.DefaultDir()
}

// loadSession builds the full stack for a command: store, optional remote
// client, dispatcher, and a session seeded from the stored collection.
func loadSession(app *App) (*session.Session, store.Store, error) {
	cfg, err := loadConfig(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	dir, err := resolveDir(app)
	if err != nil {
		return nil, store.Store{}, err
	}

	st := store.Store{Dir: dir}
	if err := st.Ensure(); err != nil {
		return nil, st, err
	}
	col, err := st.Load(context.Background())
	if err != nil {
		return nil, st, err
	}

	var client *remote.Client
	if strings.TrimSpace(cfg.Remote.BaseURL) != "" {
		client = remote.New(cfg.Remote.BaseURL, cfg.Remote.InviteCode)
		if cfg.Remote.Timeout > 0 {
			client.HTTPClient.Timeout = time.Duration(cfg.Remote.Timeout) * time.Second
		}
	}

	d := dispatch.New(st, client)
	if strings.TrimSpace(cfg.File) != "" {
		d.SetMirror(strings.TrimSpace(cfg.File))
	}
	return session.New(col, d), st, nil
}

// finish drains the dispatcher before the process exits, reporting any
// persistence or sync failure on stderr. Failures never change the exit
// status: the in-memory mutation already committed.
func finish(cmd *cobra.Command, sess *session.Session) {
	d := sess.Dispatcher()
	d.Wait()
	for {
		select {
		case res := <-d.Results():
			if res.Err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s %s: %v\n", res.Op, res.ID, res.Err)
			}
		default:
			return
		}
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
