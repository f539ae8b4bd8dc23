package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
)

// DocumentType clasificación de documentos (código numérico + descripción).
type DocumentType struct {
	ID          string
	Number      int
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate falla si el número es cero o la descripción está vacía.
func (t *DocumentType) Validate() error {
	if t.Number == 0 {
		return domain.NewValidationError("number", "el campo número no puede estar vacío")
	}
	if strings.TrimSpace(t.Description) == "" {
		return domain.NewValidationError("description", "el campo descripción no puede estar vacío")
	}
	if utf8.RuneCountInString(t.Description) > MaxNameLength {
		return domain.NewValidationError("description", fmt.Sprintf("el campo descripción admite hasta %d caracteres", MaxNameLength))
	}
	return nil
}

func (t *DocumentType) String() string {
	return "Document type: " + t.Description
}
