package ports

import (
	"context"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Documents repository.DocumentRepository
	Transfers repository.TransferRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
