package main

import (
	"github.com/spf13/cobra"

	"haci/internal/logging"
	"haci/internal/server"
)

var (
	servePort int
	serveBind string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web demo",
	Long: `Starts the HTTP demo server. The page at / streams each investigation
step over a websocket; /healthz and /metrics expose liveness and
prometheus metrics. The port comes from --port or DEMO_PORT (default 8080).`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides DEMO_PORT)")
	serveCmd.Flags().StringVar(&serveBind, "bind", "", "bind address (overrides DEMO_BIND, empty = all interfaces)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, base, err := setup()
	if err != nil {
		return err
	}

	port := cfg.Port
	if servePort > 0 {
		port = servePort
	}
	bind := cfg.BindAddr
	if serveBind != "" {
		bind = serveBind
	}

	srv, err := server.New(server.Config{
		Addr:    server.Addr(bind, port),
		Harness: base,
	})
	if err != nil {
		return err
	}

	logging.New("serve").Info("starting web demo",
		"addr", server.Addr(bind, port), "provider", base.Adapter.Provider())
	return srv.Run(cmd.Context())
}
