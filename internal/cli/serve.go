package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/jeopardy-go2/internal/api"
	"github.com/mcoot/jeopardy-go2/internal/config"
	"github.com/mcoot/jeopardy-go2/internal/factory"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := config.Load(cfg.ConfigPath)
			if err != nil {
				return err
			}
			if port != 0 {
				appCfg.Server.Port = port
			}

			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: appCfg.Log.LogLevel(),
			}))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := factory.New(ctx, appCfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			router := api.NewRouter(api.RouterConfig{
				Logger:          logger,
				MatchController: app.MatchController,
			})
			server := api.NewServer(router, api.ServerConfigFrom(appCfg.Server), logger)
			return server.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Override the configured listen port")

	return cmd
}
