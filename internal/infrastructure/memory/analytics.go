package memory

import (
	"context"
	"time"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados del tablero sobre las tablas en memoria.
type AnalyticsRepo struct{ c conn }

func (r *AnalyticsRepo) CountDocumentsBySector(_ context.Context) ([]repository.SectorDocumentCount, error) {
	var out []repository.SectorDocumentCount
	err := r.c.do(func(t *tables) error {
		counts := map[string]int{}
		for _, d := range t.documents {
			counts[d.SectorID]++
		}
		for id, n := range counts {
			row := repository.SectorDocumentCount{SectorID: id, Documents: n}
			if s, ok := t.sectors[id]; ok {
				row.SectorName = s.Name
			}
			out = append(out, row)
		}
		return nil
	})
	return page(out, func(a, b repository.SectorDocumentCount) bool {
		if a.Documents != b.Documents {
			return a.Documents > b.Documents
		}
		return a.SectorName < b.SectorName
	}, 0, 0), err
}

func (r *AnalyticsRepo) CountTransfersByState(_ context.Context) (map[string]int, error) {
	out := map[string]int{}
	err := r.c.do(func(t *tables) error {
		for _, tr := range t.transfers {
			out[tr.State]++
		}
		return nil
	})
	return out, err
}

func (r *AnalyticsRepo) ListStaleTransfers(_ context.Context, before time.Time, limit int) ([]*entity.Transfer, error) {
	cutoff := entity.DateOnly(before)
	var out []*entity.Transfer
	err := r.c.do(func(t *tables) error {
		for _, tr := range t.transfers {
			tr := tr
			if tr.State == entity.TransferStateInTransit && staleMoment(tr).Before(cutoff) {
				out = append(out, &tr)
			}
		}
		return nil
	})
	return page(out, func(a, b *entity.Transfer) bool {
		ma, mb := staleMoment(*a), staleMoment(*b)
		if !ma.Equal(mb) {
			return ma.Before(mb)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	}, limit, 0), err
}

func staleMoment(tr entity.Transfer) time.Time {
	if tr.TransferDate != nil {
		return entity.DateOnly(*tr.TransferDate)
	}
	return entity.DateOnly(tr.CreatedAt)
}
