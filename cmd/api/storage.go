package main

import (
	"context"
	"fmt"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/ports"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/infrastructure/memory"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/infrastructure/postgres"
	httpRouter "github.com/zoesacks/seguimiento-de-expedientes/internal/interfaces/http"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/config"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/logger"
)

// storage agrupa los repositorios del driver elegido.
type storage struct {
	users         repository.UserRepository
	sectors       repository.SectorRepository
	documentTypes repository.DocumentTypeRepository
	documents     repository.DocumentRepository
	transfers     repository.TransferRepository
	analytics     repository.AnalyticsRepository
	txRunner      ports.TxRunner
	readiness     httpRouter.ReadinessChecker
	close         func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			users:         s.Users(),
			sectors:       s.Sectors(),
			documentTypes: s.DocumentTypes(),
			documents:     s.Documents(),
			transfers:     s.Transfers(),
			analytics:     s.Analytics(),
			txRunner:      memory.NewTxRunner(s),
			close:         func() {},
		}, nil
	case config.StoragePostgres:
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(cfg.DB, log); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &storage{
			users:         postgres.NewUserRepository(pool),
			sectors:       postgres.NewSectorRepository(pool),
			documentTypes: postgres.NewDocumentTypeRepository(pool),
			documents:     postgres.NewDocumentRepository(pool),
			transfers:     postgres.NewTransferRepository(pool),
			analytics:     postgres.NewAnalyticsRepository(pool),
			txRunner:      postgres.NewTxRunner(pool),
			readiness:     postgres.NewReadinessChecker(pool),
			close:         pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Storage.Driver)
}
