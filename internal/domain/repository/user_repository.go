package repository

import (
	"context"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para el directorio de usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	// UpdateStatus cambia el estado de la cuenta; ErrNotFound si no existe.
	UpdateStatus(ctx context.Context, id, status string) error
	// Delete borra el usuario; sus documentos y las transferencias donde participa caen en cascada.
	Delete(ctx context.Context, id string) error
}
