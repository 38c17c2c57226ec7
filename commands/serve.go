package commands

import (
	"os"
	"os/signal"
	"syscall"

	"quillblog/app/metrics"
	"quillblog/app/repositories"
	"quillblog/app/routes"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the blog's HTTP server on http_addr until interrupted.

On SIGINT or SIGTERM the server stops accepting connections and waits up to
shutdown_timeout for in-flight requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			store, err := repositories.Open(cfg.DBPath, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.Error("Failed to close database", zap.Error(err))
				}
			}()

			m, metricsHandler := metrics.Setup()
			app, err := routes.SetupMVCRoutes(routes.Options{
				Store:          store,
				Config:         cfg,
				Logger:         logger,
				Metrics:        m,
				MetricsHandler: metricsHandler,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("Starting blog service",
				zap.String("env", cfg.Env),
				zap.String("addr", cfg.HTTPAddr),
				zap.String("db_path", cfg.DBPath),
			)
			return routes.Serve(ctx, cfg.HTTPAddr, app.Handler, cfg.ShutdownTimeout, logger)
		},
	}
}

