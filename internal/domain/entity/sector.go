package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
)

// MaxNameLength longitud máxima de los campos de texto cortos (nombre, descripción).
const MaxNameLength = 255

// Sector representa una unidad organizativa a la que pertenecen los documentos.
type Sector struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate exige un nombre no vacío.
func (s *Sector) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return domain.NewValidationError("name", "el campo nombre no puede estar vacío")
	}
	if utf8.RuneCountInString(s.Name) > MaxNameLength {
		return domain.NewValidationError("name", fmt.Sprintf("el campo nombre admite hasta %d caracteres", MaxNameLength))
	}
	return nil
}

func (s *Sector) String() string {
	return "Sector: " + s.Name
}
