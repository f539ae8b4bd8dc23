package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
)

// FiscalYearLength longitud máxima del ejercicio (ej. "2024").
const FiscalYearLength = 4

// Document es el expediente seguido por el sistema. Se identifica por (tipo, número, ejercicio).
//
// Los campos opcionales usan cadena vacía / cero / nil como ausencia; en base de datos se guardan como NULL.
type Document struct {
	ID           string
	TypeID       string
	Number       int
	FiscalYear   string
	CreationDate time.Time // fijada en el primer alta, nunca se modifica
	SectorID     string
	OwnerID      string
	LastUpdate   *time.Time

	// Type se completa en lecturas (JOIN) para la representación textual.
	Type *DocumentType
}

// Validate exige tipo, número y ejercicio.
func (d *Document) Validate() error {
	if d.TypeID == "" || d.Number == 0 || strings.TrimSpace(d.FiscalYear) == "" {
		return domain.NewValidationError("", "los campos tipo, número y ejercicio no pueden estar vacíos")
	}
	if utf8.RuneCountInString(d.FiscalYear) > FiscalYearLength {
		return domain.NewValidationError("fiscal_year", fmt.Sprintf("el ejercicio admite hasta %d caracteres", FiscalYearLength))
	}
	return nil
}

func (d *Document) String() string {
	typeLabel := d.TypeID
	if d.Type != nil {
		typeLabel = d.Type.String()
	}
	return fmt.Sprintf("Document: %s. Number: %d", typeLabel, d.Number)
}
