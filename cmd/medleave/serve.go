package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"medleave_backend/config"
	"medleave_backend/controller"
	"medleave_backend/middleware"
	"medleave_backend/report"
	"medleave_backend/routes"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			if err := connect(cfg, logger); err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
				return err
			}

			assets := report.LoadAssets(cfg.AssetDir, cfg.FontDir, cfg.UploadDir)
			logger.Info().Str("fonts", assets.Fonts.Source.String()).Str("family", assets.Fonts.Family).Msg("report assets resolved")
			store := controller.SettingsStore{
				DB:       middleware.DBConn,
				Defaults: inquiryDefaults(cfg),
			}
			controller.Configure(controller.Options{
				UploadDir: cfg.UploadDir,
				Composer:  report.NewComposer(assets, store, logger.With().Str("component", "report").Logger()),
			})

			app := routes.NewApp(routes.Options{
				UploadDir:   cfg.UploadDir,
				AssetDir:    cfg.AssetDir,
				CORSOrigins: cfg.CORSOrigins,
			})

			errc := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("server starting")
				errc <- app.Listen(cfg.Addr())
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-errc:
				return err
			case sig := <-quit:
				logger.Info().Str("signal", sig.String()).Msg("shutting down server")
			}

			if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
				logger.Error().Err(err).Msg("server shutdown")
				return err
			}
			if db, err := middleware.DBConn.DB(); err == nil {
				_ = db.Close()
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}
}

func inquiryDefaults(cfg *config.Config) map[string]string {
	return map[string]string{report.InquiryURLKey: cfg.InquiryURL}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			if err := connect(cfg, logger); err != nil {
				return err
			}
			logger.Info().Msg("migrations complete")
			return nil
		},
	}
}
