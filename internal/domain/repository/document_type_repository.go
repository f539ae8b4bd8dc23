package repository

import (
	"context"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
)

// DocumentTypeRepository define el puerto de persistencia para DocumentType.
type DocumentTypeRepository interface {
	Create(ctx context.Context, dt *entity.DocumentType) error
	GetByID(ctx context.Context, id string) (*entity.DocumentType, error)
	Update(ctx context.Context, dt *entity.DocumentType) error
	List(ctx context.Context, limit, offset int) ([]*entity.DocumentType, error)
	Delete(ctx context.Context, id string) error
}
