package dto

import "time"

// CreateTransferRequest entrada para registrar una transferencia.
// State vacío equivale a in_transit.
type CreateTransferRequest struct {
	DocumentID       string  `json:"document_id"`
	State            string  `json:"state,omitempty" validate:"omitempty,oneof=in_transit confirmed"`
	TransferDate     *string `json:"transfer_date,omitempty"`
	SenderID         string  `json:"sender_id,omitempty"`
	ConfirmationDate *string `json:"confirmation_date,omitempty"`
	ReceiverID       string  `json:"receiver_id,omitempty"`
	Remarks          string  `json:"remarks,omitempty"`
}

// UpdateTransferRequest actualización parcial; cualquier cambio de estado está permitido.
type UpdateTransferRequest struct {
	State            *string `json:"state" validate:"omitempty,oneof=in_transit confirmed"`
	TransferDate     *string `json:"transfer_date"`
	SenderID         *string `json:"sender_id"`
	ConfirmationDate *string `json:"confirmation_date"`
	ReceiverID       *string `json:"receiver_id"`
	Remarks          *string `json:"remarks"`
}

// TransferFilterRequest filtros de listado (query string).
type TransferFilterRequest struct {
	DocumentID string `query:"document_id"`
	SenderID   string `query:"sender_id"`
	ReceiverID string `query:"receiver_id"`
	State      string `query:"state"`
}

// TransferResponse salida de una transferencia.
type TransferResponse struct {
	ID               string    `json:"id"`
	DocumentID       string    `json:"document_id"`
	State            string    `json:"state"`
	TransferDate     string    `json:"transfer_date,omitempty"`
	SenderID         string    `json:"sender_id,omitempty"`
	ConfirmationDate string    `json:"confirmation_date,omitempty"`
	ReceiverID       string    `json:"receiver_id,omitempty"`
	Remarks          string    `json:"remarks,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TransferListResponse lista paginada de transferencias.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
