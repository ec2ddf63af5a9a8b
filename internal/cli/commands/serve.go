package commands

import (
	"github.com/leapstack-labs/cxql/internal/server"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Addr string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		Long: `Start an HTTP service exposing the parser and formatter.

Endpoints:
  POST /v1/parse    Body is source text; returns the tree and any errors as JSON
  POST /v1/format   Body is source text; returns formatted text (422 on syntax errors)
  GET  /healthz     Liveness check

The server shuts down gracefully on interrupt.`,
		Example: `  cxql serve --addr :8787
  curl --data-binary @pipeline.cxql localhost:8787/v1/parse`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd)

	addr := opts.Addr
	if addr == "" {
		addr = cmdCtx.Cfg.Serve.Addr
	}

	srv := server.New(server.Config{
		Addr:   addr,
		Indent: cmdCtx.Cfg.Format.Indent,
		Logger: cmdCtx.Logger,
	})
	return srv.Serve(cmd.Context())
}
