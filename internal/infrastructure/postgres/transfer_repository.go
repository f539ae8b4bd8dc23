package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación del puerto TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador; q puede ser el pool o una pgx.Tx.
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferSelect = `
	SELECT id, document_id, state, transfer_date, sender_id, confirmation_date,
	       receiver_id, remarks, created_at, updated_at
	FROM transfers`

// Create persiste una transferencia; el estado vacío pasa a in_transit.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	t.ApplyDefaults()
	if err := t.Validate(); err != nil {
		return err
	}
	if err := checkRefs(t.DocumentID, t.SenderID, t.ReceiverID); err != nil {
		return err
	}
	query := `
		INSERT INTO transfers (id, document_id, state, transfer_date, sender_id, confirmation_date,
			receiver_id, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		t.ID, nullIfEmpty(t.DocumentID), t.State, t.TransferDate, nullIfEmpty(t.SenderID),
		t.ConfirmationDate, nullIfEmpty(t.ReceiverID), nullIfEmpty(t.Remarks), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err, domain.ErrDuplicate); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene una transferencia; (nil, nil) si no existe.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	if !isUUID(id) {
		return nil, nil
	}
	t, err := scanTransfer(r.q.QueryRow(ctx, transferSelect+` WHERE id = $1`, id))
	if err != nil {
		if isNotFoundLookup(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// Update reescribe todos los campos; no hay restricción sobre el estado anterior.
func (r *TransferRepo) Update(ctx context.Context, t *entity.Transfer) error {
	t.ApplyDefaults()
	if err := t.Validate(); err != nil {
		return err
	}
	if !isUUID(t.ID) {
		return domain.ErrNotFound
	}
	if err := checkRefs(t.DocumentID, t.SenderID, t.ReceiverID); err != nil {
		return err
	}
	query := `
		UPDATE transfers SET
			document_id = $2, state = $3, transfer_date = $4, sender_id = $5,
			confirmation_date = $6, receiver_id = $7, remarks = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		t.ID, nullIfEmpty(t.DocumentID), t.State, t.TransferDate, nullIfEmpty(t.SenderID),
		t.ConfirmationDate, nullIfEmpty(t.ReceiverID), nullIfEmpty(t.Remarks), t.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err, domain.ErrDuplicate); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update transfer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista transferencias, las más recientes primero.
func (r *TransferRepo) List(ctx context.Context, filter repository.TransferFilter, limit, offset int) ([]*entity.Transfer, error) {
	if checkRefs(filter.DocumentID, filter.SenderID, filter.ReceiverID) != nil {
		return nil, nil
	}
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.DocumentID != "" {
		add("document_id = $%d", filter.DocumentID)
	}
	if filter.SenderID != "" {
		add("sender_id = $%d", filter.SenderID)
	}
	if filter.ReceiverID != "" {
		add("receiver_id = $%d", filter.ReceiverID)
	}
	if filter.State != "" {
		add("state = $%d", filter.State)
	}

	query := transferSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Delete elimina una transferencia.
func (r *TransferRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "transfers", id)
}

func scanTransfer(row rowScanner) (*entity.Transfer, error) {
	var (
		t                           entity.Transfer
		docID, sender, receiver, rm *string
	)
	err := row.Scan(
		&t.ID, &docID, &t.State, &t.TransferDate, &sender, &t.ConfirmationDate,
		&receiver, &rm, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.DocumentID = derefString(docID)
	t.SenderID = derefString(sender)
	t.ReceiverID = derefString(receiver)
	t.Remarks = derefString(rm)
	return &t, nil
}
