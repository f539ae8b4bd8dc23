package dto

import "time"

// CreateDocumentTypeRequest entrada para crear un tipo de documento.
type CreateDocumentTypeRequest struct {
	Number      int    `json:"number" validate:"required"`
	Description string `json:"description" validate:"required,max=255"`
}

// UpdateDocumentTypeRequest entrada para actualizar un tipo de documento.
type UpdateDocumentTypeRequest struct {
	Number      *int    `json:"number"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// DocumentTypeResponse salida de un tipo de documento.
type DocumentTypeResponse struct {
	ID          string    `json:"id"`
	Number      int       `json:"number"`
	Description string    `json:"description"`
	Display     string    `json:"display"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DocumentTypeListResponse lista paginada de tipos de documento.
type DocumentTypeListResponse struct {
	Items []DocumentTypeResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
