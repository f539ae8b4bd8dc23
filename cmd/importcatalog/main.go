package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/usecase"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/infrastructure/catalogimport"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/infrastructure/postgres"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/config"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/logger"
)

var (
	encoding string
	dryRun   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "importcatalog",
	Short: "Importar sectores y tipos de documento desde CSV (separador ;)",
}

var sectorsCmd = &cobra.Command{
	Use:   "sectors <archivo.csv>",
	Short: "Importar sectores (una columna: nombre)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFile(args[0], func(r io.Reader) error {
			rows, err := catalogimport.ParseSectors(r)
			if err != nil {
				return err
			}
			if dryRun {
				for _, row := range rows {
					cmd.Println(row.Name)
				}
				return nil
			}
			return withPool(func(ctx context.Context, pool postgres.Querier, log *logger.Logger) error {
				uc := usecase.NewSectorUseCase(postgres.NewSectorRepository(pool))
				var failed int
				for _, row := range rows {
					if _, err := uc.Create(ctx, row); err != nil {
						failed++
						log.Warn().Err(err).Str("name", row.Name).Msg("sector omitido")
					}
				}
				log.Info().Int("imported", len(rows)-failed).Int("failed", failed).Msg("importación de sectores terminada")
				return nil
			})
		})
	},
}

var documentTypesCmd = &cobra.Command{
	Use:   "document-types <archivo.csv>",
	Short: "Importar tipos de documento (número;descripción)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFile(args[0], func(r io.Reader) error {
			rows, err := catalogimport.ParseDocumentTypes(r)
			if err != nil {
				return err
			}
			if dryRun {
				for _, row := range rows {
					cmd.Printf("%d\t%s\n", row.Number, row.Description)
				}
				return nil
			}
			return withPool(func(ctx context.Context, pool postgres.Querier, log *logger.Logger) error {
				uc := usecase.NewDocumentTypeUseCase(postgres.NewDocumentTypeRepository(pool))
				var failed int
				for _, row := range rows {
					if _, err := uc.Create(ctx, row); err != nil {
						failed++
						log.Warn().Err(err).Int("number", row.Number).Msg("tipo de documento omitido")
					}
				}
				log.Info().Int("imported", len(rows)-failed).Int("failed", failed).Msg("importación de tipos terminada")
				return nil
			})
		})
	},
}

func withFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()
	r, err := catalogimport.Decode(f, encoding)
	if err != nil {
		return err
	}
	return fn(r)
}

func withPool(fn func(ctx context.Context, pool postgres.Querier, log *logger.Logger) error) error {
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
	return fn(ctx, pool, log)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&encoding, "encoding", "e", "utf-8", "codificación del archivo (utf-8, latin1, cp1252)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "mostrar las filas sin escribir en la base")
	rootCmd.AddCommand(sectorsCmd, documentTypesCmd)
}
