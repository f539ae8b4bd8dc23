package repository

import (
	"context"
	"time"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
)

// SectorDocumentCount cantidad de documentos de un sector. SectorID vacío agrupa los documentos sin sector.
type SectorDocumentCount struct {
	SectorID   string
	SectorName string
	Documents  int
}

// AnalyticsRepository consultas de solo lectura para el tablero.
type AnalyticsRepository interface {
	// CountDocumentsBySector ordena de mayor a menor cantidad.
	CountDocumentsBySector(ctx context.Context) ([]SectorDocumentCount, error)
	// CountTransfersByState devuelve un conteo por estado; los estados sin filas no aparecen.
	CountTransfersByState(ctx context.Context) (map[string]int, error)
	// ListStaleTransfers lista transferencias in_transit cuya fecha (o la de registro si falta)
	// es anterior a before, de la más antigua a la más reciente.
	ListStaleTransfers(ctx context.Context, before time.Time, limit int) ([]*entity.Transfer, error)
}
