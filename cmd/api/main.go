package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wendynovel0/prueba/internal/config"
	"github.com/wendynovel0/prueba/internal/infra/db"
	"github.com/wendynovel0/prueba/internal/logger"
	"github.com/wendynovel0/prueba/internal/server"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Catalog API with audit trail",
	//サブコマンド無しはserve
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update tables (users, brands, products, action_logs)",
	RunE:  runMigrate,
}

var autoMigrate bool

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "run migrations before serving")
	rootCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "run migrations before serving")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, logger.New(cfg.LogLevel, cfg.LogFormat), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	//DB接続
	gormDB, err := db.Connect(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if autoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := server.New(cfg, log, gormDB)
	return server.Run(ctx, e, cfg.Port, log)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	gormDB, err := db.Connect(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	log.Info().Msg("migrations applied")
	return nil
}
