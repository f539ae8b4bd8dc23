package entity

import (
	"time"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
)

// Estados de una transferencia.
const (
	TransferStateInTransit = "in_transit"
	TransferStateConfirmed = "confirmed"
)

// Transfer registra el movimiento de custodia de un documento entre un emisor y un receptor.
//
// No existe guarda de transición: cualquier llamador puede pasar a confirmed (o volver a in_transit)
// sin condiciones previas. Solo se verifica que el estado sea uno de los dos valores conocidos.
type Transfer struct {
	ID               string
	DocumentID       string
	State            string
	TransferDate     *time.Time
	SenderID         string
	ConfirmationDate *time.Time
	ReceiverID       string
	Remarks          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ApplyDefaults completa el estado por defecto (in_transit) si viene vacío.
func (t *Transfer) ApplyDefaults() {
	if t.State == "" {
		t.State = TransferStateInTransit
	}
}

// Validate solo comprueba que el estado pertenezca a la enumeración.
func (t *Transfer) Validate() error {
	if !IsValidTransferState(t.State) {
		return domain.NewValidationError("state", "estado inválido: debe ser in_transit o confirmed")
	}
	return nil
}

// Confirm marca la transferencia como confirmada; si no hay fecha de confirmación usa on.
func (t *Transfer) Confirm(on time.Time) {
	t.State = TransferStateConfirmed
	if t.ConfirmationDate == nil {
		d := DateOnly(on)
		t.ConfirmationDate = &d
	}
}

// IsValidTransferState indica si s es un estado conocido.
func IsValidTransferState(s string) bool {
	return s == TransferStateInTransit || s == TransferStateConfirmed
}

// DateOnly trunca t a la fecha (columnas DATE).
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
