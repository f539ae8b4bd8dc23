package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/ports"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
)

// routeSheetBatch tamaño de página al recorrer las transferencias de un documento.
const routeSheetBatch = 200

// RouteSheetUseCase arma la hoja de ruta de un documento y verifica hojas emitidas.
type RouteSheetUseCase struct {
	docRepo      repository.DocumentRepository
	sectorRepo   repository.SectorRepository
	transferRepo repository.TransferRepository
	userRepo     repository.UserRepository
	builder      ports.RouteSheetBuilder
	now          func() time.Time
}

// NewRouteSheetUseCase construye el caso de uso.
func NewRouteSheetUseCase(
	docRepo repository.DocumentRepository,
	sectorRepo repository.SectorRepository,
	transferRepo repository.TransferRepository,
	userRepo repository.UserRepository,
	builder ports.RouteSheetBuilder,
) *RouteSheetUseCase {
	return &RouteSheetUseCase{
		docRepo:      docRepo,
		sectorRepo:   sectorRepo,
		transferRepo: transferRepo,
		userRepo:     userRepo,
		builder:      builder,
		now:          time.Now,
	}
}

// Build devuelve el XML y un nombre de archivo sugerido.
func (uc *RouteSheetUseCase) Build(ctx context.Context, documentID string) (xmlBytes []byte, filename string, err error) {
	doc, err := uc.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, "", err
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}
	sheet := ports.RouteSheet{
		Document:    doc,
		Users:       map[string]*entity.User{},
		GeneratedAt: uc.now(),
	}
	if doc.SectorID != "" {
		if sheet.Sector, err = uc.sectorRepo.GetByID(ctx, doc.SectorID); err != nil {
			return nil, "", fmt.Errorf("hoja de ruta: obtener sector: %w", err)
		}
	}
	if sheet.Transfers, err = uc.transfers(ctx, doc.ID); err != nil {
		return nil, "", err
	}
	ids := []string{doc.OwnerID}
	for _, t := range sheet.Transfers {
		ids = append(ids, t.SenderID, t.ReceiverID)
	}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, seen := sheet.Users[id]; seen {
			continue
		}
		u, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, "", fmt.Errorf("hoja de ruta: obtener usuario: %w", err)
		}
		sheet.Users[id] = u
	}
	if doc.OwnerID != "" {
		sheet.Owner = sheet.Users[doc.OwnerID]
	}

	xmlBytes, err = uc.builder.BuildRouteSheet(ctx, sheet)
	if err != nil {
		return nil, "", fmt.Errorf("hoja de ruta: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("hoja_de_ruta_%s_%d.xml", doc.FiscalYear, doc.Number)
	return xmlBytes, filename, nil
}

// Verify comprueba el resumen de integridad de una hoja recibida.
func (uc *RouteSheetUseCase) Verify(ctx context.Context, data []byte) error {
	if len(data) == 0 {
		return domain.NewValidationError("", "la hoja de ruta está vacía")
	}
	return uc.builder.VerifyRouteSheet(ctx, data)
}

// transfers trae todas las transferencias del documento en orden cronológico.
// Sin fecha de transferencia se usa la fecha de registro.
func (uc *RouteSheetUseCase) transfers(ctx context.Context, documentID string) ([]*entity.Transfer, error) {
	var all []*entity.Transfer
	for offset := 0; ; offset += routeSheetBatch {
		batch, err := uc.transferRepo.List(ctx, repository.TransferFilter{DocumentID: documentID}, routeSheetBatch, offset)
		if err != nil {
			return nil, fmt.Errorf("hoja de ruta: listar transferencias: %w", err)
		}
		all = append(all, batch...)
		if len(batch) < routeSheetBatch {
			break
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		a, b := transferMoment(all[i]), transferMoment(all[j])
		if !a.Equal(b) {
			return a.Before(b)
		}
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	return all, nil
}

func transferMoment(t *entity.Transfer) time.Time {
	if t.TransferDate != nil {
		return *t.TransferDate
	}
	return entity.DateOnly(t.CreatedAt)
}
