package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/dto"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
)

// DocumentTypeUseCase casos de uso CRUD para tipos de documento.
type DocumentTypeUseCase struct {
	repo repository.DocumentTypeRepository
}

// NewDocumentTypeUseCase construye el caso de uso.
func NewDocumentTypeUseCase(repo repository.DocumentTypeRepository) *DocumentTypeUseCase {
	return &DocumentTypeUseCase{repo: repo}
}

// Create crea un tipo de documento. El repositorio valida número y descripción.
func (uc *DocumentTypeUseCase) Create(ctx context.Context, in dto.CreateDocumentTypeRequest) (*dto.DocumentTypeResponse, error) {
	now := time.Now()
	dt := &entity.DocumentType{
		ID:          uuid.New().String(),
		Number:      in.Number,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, dt); err != nil {
		return nil, err
	}
	return toDocumentTypeResponse(dt), nil
}

// GetByID obtiene un tipo de documento por ID.
func (uc *DocumentTypeUseCase) GetByID(ctx context.Context, id string) (*dto.DocumentTypeResponse, error) {
	dt, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dt == nil {
		return nil, domain.ErrNotFound
	}
	return toDocumentTypeResponse(dt), nil
}

// Update actualiza un tipo de documento.
func (uc *DocumentTypeUseCase) Update(ctx context.Context, id string, in dto.UpdateDocumentTypeRequest) (*dto.DocumentTypeResponse, error) {
	dt, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dt == nil {
		return nil, domain.ErrNotFound
	}
	if in.Number != nil {
		dt.Number = *in.Number
	}
	if in.Description != nil {
		dt.Description = *in.Description
	}
	dt.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, dt); err != nil {
		return nil, err
	}
	return toDocumentTypeResponse(dt), nil
}

// List lista tipos de documento con paginación.
func (uc *DocumentTypeUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.DocumentTypeListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentTypeResponse, 0, len(list))
	for _, dt := range list {
		items = append(items, *toDocumentTypeResponse(dt))
	}
	return &dto.DocumentTypeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un tipo de documento (y en cascada sus documentos).
func (uc *DocumentTypeUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toDocumentTypeResponse(dt *entity.DocumentType) *dto.DocumentTypeResponse {
	if dt == nil {
		return nil
	}
	return &dto.DocumentTypeResponse{
		ID:          dt.ID,
		Number:      dt.Number,
		Description: dt.Description,
		Display:     dt.String(),
		CreatedAt:   dt.CreatedAt,
		UpdatedAt:   dt.UpdatedAt,
	}
}
