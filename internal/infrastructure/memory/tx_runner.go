package memory

import (
	"context"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones con el lock del store y restaura la copia previa si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos que comparten el lock ya tomado.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := r.s.data.clone()
	c := conn{s: r.s, inTx: true}
	err := fn(ports.TxRepos{
		Documents: &DocumentRepo{c},
		Transfers: &TransferRepo{c},
	})
	if err != nil {
		r.s.data = snapshot
		return err
	}
	return nil
}
