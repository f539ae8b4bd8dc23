package repository

import (
	"context"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
)

// TransferFilter filtros opcionales para listar transferencias.
type TransferFilter struct {
	DocumentID string
	SenderID   string
	ReceiverID string
	State      string
}

// TransferRepository define el puerto de persistencia para Transfer.
type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.Transfer) error
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	Update(ctx context.Context, transfer *entity.Transfer) error
	List(ctx context.Context, filter TransferFilter, limit, offset int) ([]*entity.Transfer, error)
	Delete(ctx context.Context, id string) error
}
