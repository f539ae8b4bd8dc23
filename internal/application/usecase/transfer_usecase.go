package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/dto"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/ports"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
)

// TransferUseCase casos de uso de transferencias de custodia.
// No impone máquina de estados: el estado puede pasar a confirmed (o volver a in_transit) en cualquier momento.
type TransferUseCase struct {
	repo      repository.TransferRepository
	docRepo   repository.DocumentRepository
	userRepo  repository.UserRepository
	generator ports.TransferReceiptGenerator
	now       func() time.Time
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	repo repository.TransferRepository,
	docRepo repository.DocumentRepository,
	userRepo repository.UserRepository,
	generator ports.TransferReceiptGenerator,
) *TransferUseCase {
	return &TransferUseCase{
		repo:      repo,
		docRepo:   docRepo,
		userRepo:  userRepo,
		generator: generator,
		now:       time.Now,
	}
}

// Create registra una transferencia. Sin estado explícito queda in_transit.
func (uc *TransferUseCase) Create(ctx context.Context, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.DocumentID == "" {
		return nil, domain.NewValidationError("document_id", "el campo documento no puede estar vacío")
	}
	transferDate, err := parseDate("transfer_date", in.TransferDate)
	if err != nil {
		return nil, err
	}
	confirmationDate, err := parseDate("confirmation_date", in.ConfirmationDate)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	transfer := &entity.Transfer{
		ID:               uuid.New().String(),
		DocumentID:       in.DocumentID,
		State:            in.State,
		TransferDate:     transferDate,
		SenderID:         in.SenderID,
		ConfirmationDate: confirmationDate,
		ReceiverID:       in.ReceiverID,
		Remarks:          in.Remarks,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	transfer.ApplyDefaults()
	if err := uc.repo.Create(ctx, transfer); err != nil {
		return nil, err
	}
	return toTransferResponse(transfer), nil
}

// GetByID obtiene una transferencia por ID.
func (uc *TransferUseCase) GetByID(ctx context.Context, id string) (*dto.TransferResponse, error) {
	transfer, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTransferResponse(transfer), nil
}

// Update aplica una actualización parcial, incluido el estado sin restricciones de transición.
func (uc *TransferUseCase) Update(ctx context.Context, id string, in dto.UpdateTransferRequest) (*dto.TransferResponse, error) {
	transfer, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.State != nil {
		transfer.State = *in.State
	}
	if in.TransferDate != nil {
		if transfer.TransferDate, err = parseDate("transfer_date", in.TransferDate); err != nil {
			return nil, err
		}
	}
	if in.ConfirmationDate != nil {
		if transfer.ConfirmationDate, err = parseDate("confirmation_date", in.ConfirmationDate); err != nil {
			return nil, err
		}
	}
	if in.SenderID != nil {
		transfer.SenderID = *in.SenderID
	}
	if in.ReceiverID != nil {
		transfer.ReceiverID = *in.ReceiverID
	}
	if in.Remarks != nil {
		transfer.Remarks = *in.Remarks
	}
	transfer.ApplyDefaults()
	transfer.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, transfer); err != nil {
		return nil, err
	}
	return toTransferResponse(transfer), nil
}

// Confirm marca la transferencia como confirmada y fija la fecha de confirmación si falta.
// No comprueba el estado previo.
func (uc *TransferUseCase) Confirm(ctx context.Context, id string) (*dto.TransferResponse, error) {
	transfer, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	transfer.Confirm(now)
	transfer.UpdatedAt = now
	if err := uc.repo.Update(ctx, transfer); err != nil {
		return nil, err
	}
	return toTransferResponse(transfer), nil
}

// List lista transferencias (por documento, emisor, receptor o estado) con paginación.
func (uc *TransferUseCase) List(ctx context.Context, filter dto.TransferFilterRequest, page dto.PageRequest) (*dto.TransferListResponse, error) {
	if filter.State != "" && !entity.IsValidTransferState(filter.State) {
		return nil, domain.NewValidationError("state", "estado inválido: debe ser in_transit o confirmed")
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.TransferFilter{
		DocumentID: filter.DocumentID,
		SenderID:   filter.SenderID,
		ReceiverID: filter.ReceiverID,
		State:      filter.State,
	}, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransferResponse(t))
	}
	return &dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una transferencia.
func (uc *TransferUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Receipt genera la constancia PDF de la transferencia.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound si la transferencia no existe.
func (uc *TransferUseCase) Receipt(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	transfer, err := uc.get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.docRepo.GetByID(ctx, transfer.DocumentID)
	if err != nil {
		return nil, "", fmt.Errorf("constancia: obtener documento: %w", err)
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}
	sender, err := uc.optionalUser(ctx, transfer.SenderID)
	if err != nil {
		return nil, "", err
	}
	receiver, err := uc.optionalUser(ctx, transfer.ReceiverID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateTransferReceipt(ctx, ports.TransferReceipt{
		Transfer: transfer,
		Document: doc,
		Sender:   sender,
		Receiver: receiver,
	})
	if err != nil {
		return nil, "", fmt.Errorf("constancia: generación fallida: %w", err)
	}
	short := transfer.ID
	if len(short) > 8 {
		short = short[:8]
	}
	filename = fmt.Sprintf("transferencia_%s_%d_%s.pdf", doc.FiscalYear, doc.Number, short)
	return pdfBytes, filename, nil
}

func (uc *TransferUseCase) get(ctx context.Context, id string) (*entity.Transfer, error) {
	transfer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return transfer, nil
}

func (uc *TransferUseCase) optionalUser(ctx context.Context, id string) (*entity.User, error) {
	if id == "" {
		return nil, nil
	}
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("constancia: obtener usuario: %w", err)
	}
	return u, nil
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	if t == nil {
		return nil
	}
	return &dto.TransferResponse{
		ID:               t.ID,
		DocumentID:       t.DocumentID,
		State:            t.State,
		TransferDate:     formatDate(t.TransferDate),
		SenderID:         t.SenderID,
		ConfirmationDate: formatDate(t.ConfirmationDate),
		ReceiverID:       t.ReceiverID,
		Remarks:          t.Remarks,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
