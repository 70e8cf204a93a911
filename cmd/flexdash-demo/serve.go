package main

import (
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/ivlev/flexdash-demo/internal/engine"
	"github.com/ivlev/flexdash-demo/internal/httpapi"
)

func newServeCmd() *cobra.Command {
	var addr string
	var which string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve live presentation frames over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := pslog.Ctx(ctx)
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}

			hosts, err := buildHosts(cfg, which, nil,
				engine.WithLogger(logger),
				engine.WithOnLoop(func(name string, loop int64) {
					logger.Debug("presentation looped", "presentation", name, "loop", loop)
				}),
			)
			if err != nil {
				return err
			}

			srv, err := httpapi.New(ctx, hosts, httpapi.Options{
				AllowedOrigins: cfg.HTTP.AllowedOrigins,
				Logger:         logger,
			})
			if err != nil {
				return err
			}
			srv.StartAll()
			return srv.ListenAndServe(ctx, cfg.HTTP.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides http.addr)")
	cmd.Flags().StringVarP(&which, "presentation", "p", presentationAll, "presentations to serve: video, hero or all")
	return cmd
}
