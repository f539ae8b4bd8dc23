package ports

import (
	"context"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
)

// TransferReceipt datos ya resueltos para imprimir la constancia de una transferencia.
type TransferReceipt struct {
	Transfer *entity.Transfer
	Document *entity.Document
	Sender   *entity.User // nil si la transferencia no tiene emisor
	Receiver *entity.User // nil si la transferencia no tiene receptor
}

// TransferReceiptGenerator genera la constancia (PDF) de una transferencia.
type TransferReceiptGenerator interface {
	GenerateTransferReceipt(ctx context.Context, receipt TransferReceipt) ([]byte, error)
}
