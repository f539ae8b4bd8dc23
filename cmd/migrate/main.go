package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/infrastructure/postgres"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/config"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migraciones del esquema PostgreSQL",
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplicar todas las migraciones pendientes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(func(mg *postgres.Migrator) error { return mg.Up() })
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Revertir la última migración",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(func(mg *postgres.Migrator) error { return mg.Down() })
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Mostrar la versión actual del esquema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(func(mg *postgres.Migrator) error {
			version, dirty, err := mg.Version()
			if err != nil {
				return err
			}
			cmd.Printf("versión %d (dirty=%t)\n", version, dirty)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(upCmd, downCmd, versionCmd)
}

func withMigrator(fn func(mg *postgres.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	mg, err := postgres.NewMigrator(cfg.DB, log)
	if err != nil {
		return err
	}
	defer func() { _ = mg.Close() }()
	return fn(mg)
}
