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

// SectorUseCase casos de uso CRUD para sectores.
type SectorUseCase struct {
	repo repository.SectorRepository
}

// NewSectorUseCase construye el caso de uso.
func NewSectorUseCase(repo repository.SectorRepository) *SectorUseCase {
	return &SectorUseCase{repo: repo}
}

// Create crea un nuevo sector.
func (uc *SectorUseCase) Create(ctx context.Context, in dto.CreateSectorRequest) (*dto.SectorResponse, error) {
	now := time.Now()
	sector := &entity.Sector{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, sector); err != nil {
		return nil, err
	}
	return toSectorResponse(sector), nil
}

// GetByID obtiene un sector por ID.
func (uc *SectorUseCase) GetByID(ctx context.Context, id string) (*dto.SectorResponse, error) {
	sector, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sector == nil {
		return nil, domain.ErrNotFound
	}
	return toSectorResponse(sector), nil
}

// Update actualiza un sector.
func (uc *SectorUseCase) Update(ctx context.Context, id string, in dto.UpdateSectorRequest) (*dto.SectorResponse, error) {
	sector, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sector == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		sector.Name = *in.Name
	}
	sector.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, sector); err != nil {
		return nil, err
	}
	return toSectorResponse(sector), nil
}

// List lista sectores con paginación.
func (uc *SectorUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.SectorListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SectorResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSectorResponse(s))
	}
	return &dto.SectorListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un sector. Los documentos del sector se eliminan en cascada.
func (uc *SectorUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toSectorResponse(s *entity.Sector) *dto.SectorResponse {
	if s == nil {
		return nil
	}
	return &dto.SectorResponse{
		ID:        s.ID,
		Name:      s.Name,
		Display:   s.String(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
