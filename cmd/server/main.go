package main

import (
	"context"
	"fmt"
	"os"

	_ "workflowhub/docs"
	"workflowhub/internal/config"
	"workflowhub/internal/database"
	"workflowhub/internal/logger"
	"workflowhub/internal/repository"
	"workflowhub/internal/server"
	"workflowhub/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title           WorkFlow Hub API
// @version         1.0
// @description     Projects, kanban tasks, comments and an audit trail.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	if err := execute(newRootCmd()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// syncLogs flushes buffered log entries; replaced in tests.
var syncLogs = logger.Sync

// execute runs the command tree and flushes the logger whether or not the
// command failed. os.Exit in main skips deferred calls, so the flush lives here.
func execute(rootCmd *cobra.Command) error {
	defer syncLogs()
	return rootCmd.Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "workflowhub",
		Short:         "WorkFlow Hub - projects, kanban tasks and activity",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var cfg *config.Config
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if err := logger.Init(cfg.LogDevelopment); err != nil {
			return err
		}
		cfg.LogSources()
		return nil
	}

	rootCmd.AddCommand(serveCmd(&cfg))
	rootCmd.AddCommand(migrateCmd(&cfg))
	rootCmd.AddCommand(seedCmd(&cfg))

	return rootCmd
}

func serveCmd(cfg **config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			autoMigrate, _ := cmd.Flags().GetBool("migrate")
			if autoMigrate {
				if err := database.MigrateUp(*cfg); err != nil {
					return err
				}
			}

			s, err := server.Init(*cfg)
			if err != nil {
				return fmt.Errorf("server initialization failed: %w", err)
			}
			return s.Run()
		},
	}

	cmd.Flags().Bool("migrate", false, "Apply pending migrations before serving")

	return cmd
}

func migrateCmd(cfg **config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return database.MigrateUp(*cfg)
		},
	})

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			return database.MigrateDown(*cfg, steps)
		},
	}
	down.Flags().Int("steps", 1, "Number of migrations to roll back")
	cmd.AddCommand(down)

	return cmd
}

func seedCmd(cfg **config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default user and task types",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Open(*cfg)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			seeder := service.NewSeeder(
				repository.NewUserRepository(db),
				repository.NewTaskTypeRepository(db),
			)
			ownerID, err := seeder.Seed(context.Background())
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}

			logger.Info("Seed: done", zap.String("default_user_id", ownerID.String()))
			return nil
		},
	}
}
