package repository

import (
	"context"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
)

// SectorRepository define el puerto de persistencia para Sector (DIP).
type SectorRepository interface {
	Create(ctx context.Context, sector *entity.Sector) error
	GetByID(ctx context.Context, id string) (*entity.Sector, error)
	Update(ctx context.Context, sector *entity.Sector) error
	List(ctx context.Context, limit, offset int) ([]*entity.Sector, error)
	Delete(ctx context.Context, id string) error
}
