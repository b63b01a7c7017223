package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"remind-cli/internal/store"
	"remind-cli/internal/web"
)

func newWebCmd(app *App) *cobra.Command {
	var addr string
	var inviteCode string

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Run the sync server (HTTP API + websocket change feed)",
		Example: strings.TrimSpace(`
# Serve the local store on localhost
remind web --addr 127.0.0.1:8484 --invite-code s3cret
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(app)
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

			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				listenAddr = strings.TrimSpace(cfg.Web.Addr)
			}
			if listenAddr == "" {
				return writeErr(cmd, errors.New("web: missing --addr"))
			}
			code := strings.TrimSpace(inviteCode)
			if code == "" {
				code = strings.TrimSpace(cfg.Web.InviteCode)
			}
			if code == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: no invite code configured; the API is open")
			}

			srv := web.NewServer(web.ServerConfig{Addr: listenAddr, InviteCode: code}, st)
			fmt.Fprintf(cmd.OutOrStdout(), "remind web listening on http://%s\n", listenAddr)
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: web.addr from the config)")
	cmd.Flags().StringVar(&inviteCode, "invite-code", "", "Shared access code (default: web.invite_code from the config)")

	return cmd
}
