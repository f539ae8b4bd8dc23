package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/auth"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/infrastructure/postgres"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/config"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/logger"
)

var (
	username string
	password string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "createadmin",
	Short: "Crear el primer usuario administrador",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

		ctx := context.Background()
		if err := postgres.Migrate(cfg.DB, log); err != nil {
			return err
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()

		authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
		created, err := authUC.EnsureAdmin(ctx, username, password)
		if err != nil {
			return err
		}
		if !created {
			cmd.Printf("el usuario %q ya existe, no se modificó\n", username)
			return nil
		}
		log.Info().Str("username", username).Msg("administrador creado")
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&username, "username", "u", "", "nombre de usuario")
	rootCmd.Flags().StringVarP(&password, "password", "p", "", "contraseña (mínimo 8 caracteres)")
	_ = rootCmd.MarkFlagRequired("username")
	_ = rootCmd.MarkFlagRequired("password")
}
