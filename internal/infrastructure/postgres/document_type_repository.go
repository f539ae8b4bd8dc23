package postgres

import (
	"context"
	"fmt"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
)

var _ repository.DocumentTypeRepository = (*DocumentTypeRepo)(nil)

// DocumentTypeRepo implementación del puerto DocumentTypeRepository sobre PostgreSQL.
type DocumentTypeRepo struct {
	q Querier
}

// NewDocumentTypeRepository construye el adaptador de persistencia para tipos de documento.
func NewDocumentTypeRepository(q Querier) *DocumentTypeRepo {
	return &DocumentTypeRepo{q: q}
}

// Create valida y persiste un tipo de documento.
func (r *DocumentTypeRepo) Create(ctx context.Context, dt *entity.DocumentType) error {
	if err := dt.Validate(); err != nil {
		return err
	}
	query := `
		INSERT INTO document_types (id, number, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, dt.ID, dt.Number, dt.Description, dt.CreatedAt, dt.UpdatedAt)
	if err != nil {
		if mapped := mapWriteError(err, domain.ErrDuplicate); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert document type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo de documento por ID; (nil, nil) si no existe.
func (r *DocumentTypeRepo) GetByID(ctx context.Context, id string) (*entity.DocumentType, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `
		SELECT id, number, description, created_at, updated_at
		FROM document_types WHERE id = $1`
	var dt entity.DocumentType
	err := r.q.QueryRow(ctx, query, id).Scan(&dt.ID, &dt.Number, &dt.Description, &dt.CreatedAt, &dt.UpdatedAt)
	if err != nil {
		if isNotFoundLookup(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document type: %w", err)
	}
	return &dt, nil
}

// Update valida y actualiza un tipo de documento.
func (r *DocumentTypeRepo) Update(ctx context.Context, dt *entity.DocumentType) error {
	if err := dt.Validate(); err != nil {
		return err
	}
	if !isUUID(dt.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE document_types SET number = $2, description = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, dt.ID, dt.Number, dt.Description, dt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update document type: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista tipos de documento ordenados por número.
func (r *DocumentTypeRepo) List(ctx context.Context, limit, offset int) ([]*entity.DocumentType, error) {
	query := `
		SELECT id, number, description, created_at, updated_at
		FROM document_types ORDER BY number, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list document types: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentType
	for rows.Next() {
		var dt entity.DocumentType
		if err := rows.Scan(&dt.ID, &dt.Number, &dt.Description, &dt.CreatedAt, &dt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document type: %w", err)
		}
		list = append(list, &dt)
	}
	return list, rows.Err()
}

// Delete elimina un tipo de documento; la base elimina en cascada sus documentos.
func (r *DocumentTypeRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "document_types", id)
}
