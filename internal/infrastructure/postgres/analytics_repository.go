package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el tablero.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountDocumentsBySector agrupa documentos por sector; los que no tienen sector quedan con id y nombre vacíos.
func (r *AnalyticsRepo) CountDocumentsBySector(ctx context.Context) ([]repository.SectorDocumentCount, error) {
	const query = `
	SELECT
	    COALESCE(s.id::TEXT, '') AS sector_id,
	    COALESCE(s.name, '')     AS sector_name,
	    COUNT(d.id)              AS documents
	FROM documents d
	LEFT JOIN sectors s ON s.id = d.sector_id
	GROUP BY s.id, s.name
	ORDER BY documents DESC, sector_name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountDocumentsBySector: %w", err)
	}
	defer rows.Close()

	var results []repository.SectorDocumentCount
	for rows.Next() {
		var row repository.SectorDocumentCount
		if err := rows.Scan(&row.SectorID, &row.SectorName, &row.Documents); err != nil {
			return nil, fmt.Errorf("analytics.CountDocumentsBySector scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountTransfersByState cuenta transferencias por estado.
func (r *AnalyticsRepo) CountTransfersByState(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT state, COUNT(*) FROM transfers GROUP BY state`)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountTransfersByState: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			state string
			n     int
		)
		if err := rows.Scan(&state, &n); err != nil {
			return nil, fmt.Errorf("analytics.CountTransfersByState scan: %w", err)
		}
		out[state] = n
	}
	return out, rows.Err()
}

// ListStaleTransfers transferencias en tránsito anteriores a before.
func (r *AnalyticsRepo) ListStaleTransfers(ctx context.Context, before time.Time, limit int) ([]*entity.Transfer, error) {
	query := transferSelect + `
	WHERE state = $1
	  AND COALESCE(transfer_date, created_at::DATE) < $2::DATE
	ORDER BY COALESCE(transfer_date, created_at::DATE), created_at, id
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, entity.TransferStateInTransit, before, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListStaleTransfers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("analytics.ListStaleTransfers scan: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
