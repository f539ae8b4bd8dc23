package postgres

import (
	"context"
	"fmt"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
)

var _ repository.SectorRepository = (*SectorRepo)(nil)

// SectorRepo implementación del puerto SectorRepository sobre PostgreSQL.
type SectorRepo struct {
	q Querier
}

// NewSectorRepository construye el adaptador de persistencia para sectores.
func NewSectorRepository(q Querier) *SectorRepo {
	return &SectorRepo{q: q}
}

// Create valida y persiste un nuevo sector.
func (r *SectorRepo) Create(ctx context.Context, sector *entity.Sector) error {
	if err := sector.Validate(); err != nil {
		return err
	}
	query := `
		INSERT INTO sectors (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, sector.ID, sector.Name, sector.CreatedAt, sector.UpdatedAt)
	if err != nil {
		if mapped := mapWriteError(err, domain.ErrDuplicate); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert sector: %w", err)
	}
	return nil
}

// GetByID obtiene un sector por ID; (nil, nil) si no existe.
func (r *SectorRepo) GetByID(ctx context.Context, id string) (*entity.Sector, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `SELECT id, name, created_at, updated_at FROM sectors WHERE id = $1`
	var s entity.Sector
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNotFoundLookup(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sector: %w", err)
	}
	return &s, nil
}

// Update valida y actualiza un sector existente.
func (r *SectorRepo) Update(ctx context.Context, sector *entity.Sector) error {
	if err := sector.Validate(); err != nil {
		return err
	}
	if !isUUID(sector.ID) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `UPDATE sectors SET name = $2, updated_at = $3 WHERE id = $1`,
		sector.ID, sector.Name, sector.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sector: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista sectores por nombre con paginación.
func (r *SectorRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sector, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM sectors ORDER BY name, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sector
	for rows.Next() {
		var s entity.Sector
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina un sector por ID; la base elimina en cascada sus documentos.
func (r *SectorRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "sectors", id)
}

// deleteByID borra una fila por id; ErrNotFound si no existía.
func deleteByID(ctx context.Context, q Querier, table, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	cmd, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
