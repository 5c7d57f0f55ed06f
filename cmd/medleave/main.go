package main

import (
	"context"
	"fmt"
	"os"

	"medleave_backend/config"
	"medleave_backend/middleware"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "medleave",
		Short:         "Medical leave records API and certificate renderer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringSlice("env-file", nil, "Additional .env files to load")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedAdminCmd())
	rootCmd.AddCommand(hijriCmd())
	rootCmd.AddCommand(renderCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap loads and checks the configuration and installs the logger
// and token settings.
func bootstrap(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	files, _ := cmd.Flags().GetStringSlice("env-file")
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := middleware.NewLogger(cfg.LogLevel, cfg.Env)
	middleware.SetLogger(logger)

	secret := cfg.JWTSecret
	if secret == "" {
		logger.Warn().Msg("SECRET_KEY is empty, using an insecure development key")
		secret = "medleave-development-secret"
	}
	middleware.ConfigureAuth(secret, cfg.TokenTTL)
	return cfg, logger, nil
}

// connect opens the database and migrates the schema.
func connect(cfg *config.Config, logger zerolog.Logger) error {
	if err := middleware.ConnectDB(cfg.DBDriver, cfg.DSN()); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	logger.Info().Str("driver", cfg.DBDriver).Msg("database connected")
	if err := middleware.MigrateDB(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
