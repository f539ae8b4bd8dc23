package dto

import "time"

// CreateSectorRequest entrada para crear un sector.
type CreateSectorRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// UpdateSectorRequest entrada para actualizar un sector.
type UpdateSectorRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
}

// SectorResponse salida de un sector.
type SectorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Display   string    `json:"display"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SectorListResponse lista paginada de sectores.
type SectorListResponse struct {
	Items []SectorResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
