package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/dto"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/usecase"
)

// DocumentTypeHandler maneja las peticiones HTTP para tipos de documento.
type DocumentTypeHandler struct {
	uc *usecase.DocumentTypeUseCase
	errorWriter
}

// NewDocumentTypeHandler construye el handler.
func NewDocumentTypeHandler(uc *usecase.DocumentTypeUseCase, ew errorWriter) *DocumentTypeHandler {
	return &DocumentTypeHandler{uc: uc, errorWriter: ew}
}

// Create godoc
// @Summary      Crear tipo de documento
// @Tags         document-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDocumentTypeRequest  true  "Número y descripción"
// @Success      201   {object}  dto.DocumentTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/document-types [post]
func (h *DocumentTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener tipo de documento
// @Tags         document-types
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tipo"
// @Success      200  {object}  dto.DocumentTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/document-types/{id} [get]
func (h *DocumentTypeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

func (h *DocumentTypeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDocumentTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

func (h *DocumentTypeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

func (h *DocumentTypeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
