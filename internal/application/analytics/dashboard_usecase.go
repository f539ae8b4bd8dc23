// Package analytics contiene los casos de uso del tablero de seguimiento.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/dto"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
)

const (
	dashboardStaleLimit = 10 // transferencias demoradas en el widget
	noSectorLabel       = "Sin sector"
)

// DashboardUseCase resume el estado de documentos y transferencias.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo  repository.AnalyticsRepository
	staleAfterDays int
	now            func() time.Time
}

// NewDashboardUseCase construye el caso de uso. staleAfterDays menor a 1 se toma como 1.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, staleAfterDays int) *DashboardUseCase {
	if staleAfterDays < 1 {
		staleAfterDays = 1
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, staleAfterDays: staleAfterDays, now: time.Now}
}

// GetSummary construye el tablero con tres consultas en paralelo:
//  1. CountDocumentsBySector
//  2. CountTransfersByState
//  3. ListStaleTransfers(hoy - staleAfterDays)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	cutoff := entity.DateOnly(now).AddDate(0, 0, -uc.staleAfterDays)

	type sectorsResult struct {
		rows []repository.SectorDocumentCount
		err  error
	}
	type statesResult struct {
		counts map[string]int
		err    error
	}
	type staleResult struct {
		list []*entity.Transfer
		err  error
	}

	sectorsCh := make(chan sectorsResult, 1)
	statesCh := make(chan statesResult, 1)
	staleCh := make(chan staleResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.CountDocumentsBySector(ctx)
		sectorsCh <- sectorsResult{rows, err}
	}()
	go func() {
		counts, err := uc.analyticsRepo.CountTransfersByState(ctx)
		statesCh <- statesResult{counts, err}
	}()
	go func() {
		list, err := uc.analyticsRepo.ListStaleTransfers(ctx, cutoff, dashboardStaleLimit)
		staleCh <- staleResult{list, err}
	}()

	sectors := <-sectorsCh
	states := <-statesCh
	stale := <-staleCh

	if sectors.err != nil {
		return nil, fmt.Errorf("dashboard: documentos por sector: %w", sectors.err)
	}
	if states.err != nil {
		return nil, fmt.Errorf("dashboard: transferencias por estado: %w", states.err)
	}
	if stale.err != nil {
		return nil, fmt.Errorf("dashboard: transferencias demoradas: %w", stale.err)
	}

	out := &dto.DashboardSummaryDTO{
		DocumentsBySector: make([]dto.SectorCountDTO, 0, len(sectors.rows)),
		InTransit:         states.counts[entity.TransferStateInTransit],
		Confirmed:         states.counts[entity.TransferStateConfirmed],
		StaleTransfers:    make([]dto.TransferResponse, 0, len(stale.list)),
		StaleAfterDays:    uc.staleAfterDays,
		DateLabel:         monthLabel(now),
	}
	for _, row := range sectors.rows {
		name := row.SectorName
		if row.SectorID == "" {
			name = noSectorLabel
		}
		out.TotalDocuments += row.Documents
		out.DocumentsBySector = append(out.DocumentsBySector, dto.SectorCountDTO{
			SectorID:   row.SectorID,
			SectorName: name,
			Documents:  row.Documents,
		})
	}
	for _, t := range stale.list {
		out.StaleTransfers = append(out.StaleTransfers, staleTransfer(t))
	}
	return out, nil
}

func staleTransfer(t *entity.Transfer) dto.TransferResponse {
	out := dto.TransferResponse{
		ID:         t.ID,
		DocumentID: t.DocumentID,
		State:      t.State,
		SenderID:   t.SenderID,
		ReceiverID: t.ReceiverID,
		Remarks:    t.Remarks,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
	if t.TransferDate != nil {
		out.TransferDate = t.TransferDate.Format(dto.DateLayout)
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
