package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-loginform/internal/logging"
	"github.com/goliatone/go-loginform/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the login page, landing page, assets and wasm controller",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Server.WasmDir == "" {
				logging.Warnf("no wasm dir configured, serving the login page without the controller")
			}
			renderer, err := buildRenderer(a.cfg, a.cfg.Server.WasmDir != "")
			if err != nil {
				return err
			}
			srv, err := server.New(
				server.WithAddr(a.cfg.Server.Addr),
				server.WithWasmDir(a.cfg.Server.WasmDir),
				server.WithSuccessPath(a.cfg.SuccessPath),
				server.WithRenderer(renderer),
				server.WithLogger(logging.For("server")),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().String("addr", "", "listen address")
	cmd.Flags().String("wasm-dir", "", "directory holding loginform.wasm and wasm_exec.js")
	return cmd
}
