package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/dto"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/ports"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
)

// DocumentUseCase casos de uso de documentos (expedientes).
//
// Toda escritura pasa por save: validación, comprobación de duplicado y escritura
// dentro de una misma transacción. El índice único (tipo, número, ejercicio) de la base
// cubre la carrera entre dos altas concurrentes y se reporta con el mismo error.
type DocumentUseCase struct {
	txRunner ports.TxRunner
	repo     repository.DocumentRepository
	now      func() time.Time
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(txRunner ports.TxRunner, repo repository.DocumentRepository) *DocumentUseCase {
	return &DocumentUseCase{txRunner: txRunner, repo: repo, now: time.Now}
}

// Create da de alta un documento. La fecha de alta se fija aquí y no vuelve a cambiar.
func (uc *DocumentUseCase) Create(ctx context.Context, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	lastUpdate, err := parseDate("last_update", in.LastUpdate)
	if err != nil {
		return nil, err
	}
	doc := &entity.Document{
		ID:           uuid.New().String(),
		TypeID:       in.TypeID,
		Number:       in.Number,
		FiscalYear:   in.FiscalYear,
		CreationDate: entity.DateOnly(uc.now()),
		SectorID:     in.SectorID,
		OwnerID:      in.OwnerID,
		LastUpdate:   lastUpdate,
	}
	if err := uc.save(ctx, doc, true); err != nil {
		return nil, err
	}
	return uc.reload(ctx, doc)
}

// GetByID obtiene un documento por ID (incluye su tipo).
func (uc *DocumentUseCase) GetByID(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return toDocumentResponse(doc), nil
}

// Update aplica una actualización parcial. Si (tipo, número, ejercicio) no cambia, el propio
// documento no cuenta como duplicado.
func (uc *DocumentUseCase) Update(ctx context.Context, id string, in dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if in.TypeID != nil {
		doc.TypeID = *in.TypeID
		doc.Type = nil
	}
	if in.Number != nil {
		doc.Number = *in.Number
	}
	if in.FiscalYear != nil {
		doc.FiscalYear = *in.FiscalYear
	}
	if in.SectorID != nil {
		doc.SectorID = *in.SectorID
	}
	if in.OwnerID != nil {
		doc.OwnerID = *in.OwnerID
	}
	if in.LastUpdate != nil {
		lastUpdate, err := parseDate("last_update", in.LastUpdate)
		if err != nil {
			return nil, err
		}
		doc.LastUpdate = lastUpdate
	}
	if err := uc.save(ctx, doc, false); err != nil {
		return nil, err
	}
	return uc.reload(ctx, doc)
}

// List lista documentos con filtros opcionales y paginación.
func (uc *DocumentUseCase) List(ctx context.Context, filter dto.DocumentFilterRequest, page dto.PageRequest) (*dto.DocumentListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.DocumentFilter{
		TypeID:     filter.TypeID,
		SectorID:   filter.SectorID,
		OwnerID:    filter.OwnerID,
		FiscalYear: filter.FiscalYear,
	}, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDocumentResponse(d))
	}
	return &dto.DocumentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un documento; sus transferencias se eliminan en cascada.
func (uc *DocumentUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Exists indica si ya hay un documento con (tipo, número, ejercicio), excluyendo excludeID.
func (uc *DocumentUseCase) Exists(ctx context.Context, typeID string, number int, fiscalYear, excludeID string) (bool, error) {
	return uc.repo.Exists(ctx, typeID, number, fiscalYear, excludeID)
}

func (uc *DocumentUseCase) save(ctx context.Context, doc *entity.Document, create bool) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		exists, err := repos.Documents.Exists(ctx, doc.TypeID, doc.Number, doc.FiscalYear, doc.ID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDocumentAlreadyRegistered
		}
		if create {
			return repos.Documents.Create(ctx, doc)
		}
		return repos.Documents.Update(ctx, doc)
	})
}

// reload vuelve a leer el documento para devolverlo con su tipo resuelto.
func (uc *DocumentUseCase) reload(ctx context.Context, doc *entity.Document) (*dto.DocumentResponse, error) {
	saved, err := uc.repo.GetByID(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return toDocumentResponse(doc), nil
	}
	return toDocumentResponse(saved), nil
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	if d == nil {
		return nil
	}
	creation := d.CreationDate
	return &dto.DocumentResponse{
		ID:           d.ID,
		TypeID:       d.TypeID,
		Type:         toDocumentTypeResponse(d.Type),
		Number:       d.Number,
		FiscalYear:   d.FiscalYear,
		CreationDate: formatDate(&creation),
		SectorID:     d.SectorID,
		OwnerID:      d.OwnerID,
		LastUpdate:   formatDate(d.LastUpdate),
		Display:      d.String(),
	}
}
