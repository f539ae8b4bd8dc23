package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/dto"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/usecase"
)

// TransferHandler maneja las peticiones HTTP para transferencias de custodia.
type TransferHandler struct {
	uc *usecase.TransferUseCase
	errorWriter
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *usecase.TransferUseCase, ew errorWriter) *TransferHandler {
	return &TransferHandler{uc: uc, errorWriter: ew}
}

// Create godoc
// @Summary      Registrar transferencia
// @Description  Sin estado explícito la transferencia queda in_transit.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Documento, emisor, receptor y fechas"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar transferencia
// @Description  Cualquier cambio de estado está permitido.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la transferencia"
// @Param        body  body  dto.UpdateTransferRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.TransferResponse
// @Router       /api/transfers/{id} [put]
func (h *TransferHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar recepción
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/confirm [post]
func (h *TransferHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar transferencias
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        document_id  query  string  false  "Documento"
// @Param        sender_id    query  string  false  "Emisor"
// @Param        receiver_id  query  string  false  "Receptor"
// @Param        state        query  string  false  "in_transit | confirmed"
// @Success      200  {object}  dto.TransferListResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var filter dto.TransferFilterRequest
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), filter, pageFromQuery(c))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

func (h *TransferHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receipt godoc
// @Summary      Descargar constancia PDF
// @Tags         transfers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/receipt [get]
func (h *TransferHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.Receipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.write(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
