package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador; q puede ser el pool o una pgx.Tx.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentSelect = `
	SELECT d.id, d.document_type_id, d.number, d.fiscal_year, d.creation_date,
	       d.sector_id, d.owner_id, d.last_update,
	       t.id, t.number, t.description, t.created_at, t.updated_at
	FROM documents d
	LEFT JOIN document_types t ON t.id = d.document_type_id`

// Create valida y persiste un documento. Un duplicado (tipo, número, ejercicio) devuelve ErrDocumentAlreadyRegistered.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := checkRefs(doc.TypeID, doc.SectorID, doc.OwnerID); err != nil {
		return err
	}
	var creation *time.Time
	if !doc.CreationDate.IsZero() {
		creation = &doc.CreationDate
	}
	query := `
		INSERT INTO documents (id, document_type_id, number, fiscal_year, creation_date, sector_id, owner_id, last_update)
		VALUES ($1, $2, $3, $4, COALESCE($5, CURRENT_DATE), $6, $7, $8)
		RETURNING creation_date`
	err := r.q.QueryRow(ctx, query,
		doc.ID, doc.TypeID, doc.Number, doc.FiscalYear, creation,
		nullIfEmpty(doc.SectorID), nullIfEmpty(doc.OwnerID), doc.LastUpdate,
	).Scan(&doc.CreationDate)
	if err != nil {
		if mapped := mapWriteError(err, domain.ErrDocumentAlreadyRegistered); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento con su tipo; (nil, nil) si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	if !isUUID(id) {
		return nil, nil
	}
	doc, err := scanDocument(r.q.QueryRow(ctx, documentSelect+` WHERE d.id = $1`, id))
	if err != nil {
		if isNotFoundLookup(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// Update valida y actualiza el documento en su lugar. creation_date no se modifica.
func (r *DocumentRepo) Update(ctx context.Context, doc *entity.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if !isUUID(doc.ID) {
		return domain.ErrNotFound
	}
	if err := checkRefs(doc.TypeID, doc.SectorID, doc.OwnerID); err != nil {
		return err
	}
	query := `
		UPDATE documents SET
			document_type_id = $2, number = $3, fiscal_year = $4,
			sector_id = $5, owner_id = $6, last_update = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		doc.ID, doc.TypeID, doc.Number, doc.FiscalYear,
		nullIfEmpty(doc.SectorID), nullIfEmpty(doc.OwnerID), doc.LastUpdate,
	)
	if err != nil {
		if mapped := mapWriteError(err, domain.ErrDocumentAlreadyRegistered); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista documentos aplicando los filtros no vacíos.
func (r *DocumentRepo) List(ctx context.Context, filter repository.DocumentFilter, limit, offset int) ([]*entity.Document, error) {
	// un ID mal formado en el filtro no puede coincidir con ninguna fila
	if checkRefs(filter.TypeID, filter.SectorID, filter.OwnerID) != nil {
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
	if filter.TypeID != "" {
		add("d.document_type_id = $%d", filter.TypeID)
	}
	if filter.SectorID != "" {
		add("d.sector_id = $%d", filter.SectorID)
	}
	if filter.OwnerID != "" {
		add("d.owner_id = $%d", filter.OwnerID)
	}
	if filter.FiscalYear != "" {
		add("d.fiscal_year = $%d", filter.FiscalYear)
	}

	query := documentSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY d.fiscal_year DESC, d.number DESC, d.id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, doc)
	}
	return list, rows.Err()
}

// Delete elimina el documento; sus transferencias caen en cascada.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "documents", id)
}

// Exists indica si otro documento (distinto de excludeID) ya usa (tipo, número, ejercicio).
func (r *DocumentRepo) Exists(ctx context.Context, typeID string, number int, fiscalYear, excludeID string) (bool, error) {
	if !isUUID(typeID) {
		return false, nil
	}
	if excludeID != "" && !isUUID(excludeID) {
		excludeID = ""
	}
	query := `
		SELECT EXISTS (
			SELECT 1 FROM documents
			WHERE document_type_id = $1 AND number = $2 AND fiscal_year = $3
			  AND id IS DISTINCT FROM $4::uuid
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, typeID, number, fiscalYear, nullIfEmpty(excludeID)).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists document: %w", err)
	}
	return exists, nil
}

func scanDocument(row rowScanner) (*entity.Document, error) {
	var (
		d                       entity.Document
		typeID, sectorID, owner *string
		number                  *int
		fiscalYear              *string
		creation                *time.Time
		tID, tDesc              *string
		tNumber                 *int
		tCreated, tUpdated      *time.Time
	)
	err := row.Scan(
		&d.ID, &typeID, &number, &fiscalYear, &creation,
		&sectorID, &owner, &d.LastUpdate,
		&tID, &tNumber, &tDesc, &tCreated, &tUpdated,
	)
	if err != nil {
		return nil, err
	}
	d.TypeID = derefString(typeID)
	d.Number = derefInt(number)
	d.FiscalYear = derefString(fiscalYear)
	d.SectorID = derefString(sectorID)
	d.OwnerID = derefString(owner)
	if creation != nil {
		d.CreationDate = *creation
	}
	if tID != nil {
		d.Type = &entity.DocumentType{
			ID:          *tID,
			Number:      derefInt(tNumber),
			Description: derefString(tDesc),
		}
		if tCreated != nil {
			d.Type.CreatedAt = *tCreated
		}
		if tUpdated != nil {
			d.Type.UpdatedAt = *tUpdated
		}
	}
	return &d, nil
}
