package repository

import (
	"context"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
)

// DocumentFilter filtros opcionales para listar documentos (vacío = sin filtrar).
type DocumentFilter struct {
	TypeID     string
	SectorID   string
	OwnerID    string
	FiscalYear string
}

// DocumentRepository define el puerto de persistencia para Document.
// Create y Update validan la entidad y devuelven domain.ErrDocumentAlreadyRegistered
// si otro documento ya tiene el mismo (tipo, número, ejercicio).
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	Update(ctx context.Context, doc *entity.Document) error
	List(ctx context.Context, filter DocumentFilter, limit, offset int) ([]*entity.Document, error)
	Delete(ctx context.Context, id string) error
	// Exists indica si hay otro documento con el mismo (tipo, número, ejercicio), excluyendo excludeID.
	Exists(ctx context.Context, typeID string, number int, fiscalYear, excludeID string) (bool, error)
}
