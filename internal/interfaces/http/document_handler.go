package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/dto"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/usecase"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
)

// DocumentHandler maneja las peticiones HTTP para documentos (expedientes).
type DocumentHandler struct {
	uc *usecase.DocumentUseCase
	errorWriter
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase, ew errorWriter) *DocumentHandler {
	return &DocumentHandler{uc: uc, errorWriter: ew}
}

// Create godoc
// @Summary      Dar de alta un documento
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDocumentRequest  true  "Tipo, número, ejercicio y datos opcionales"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "DOCUMENT_ALREADY_REGISTERED"
// @Failure      422   {object}  dto.ErrorResponse  "REFERENCE_NOT_FOUND"
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
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
// @Summary      Obtener documento por ID
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar documento
// @Description  Actualización parcial. Guardar el mismo documento sin cambiar (tipo, número, ejercicio) no es duplicado.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del documento"
// @Param        body  body  dto.UpdateDocumentRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [put]
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        type_id      query  string  false  "Tipo"
// @Param        sector_id    query  string  false  "Sector"
// @Param        owner_id     query  string  false  "Propietario"
// @Param        fiscal_year  query  string  false  "Ejercicio"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var filter dto.DocumentFilterRequest
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), filter, pageFromQuery(c))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// Exists godoc
// @Summary      Comprobar si un documento ya está registrado
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        type_id      query  string  true   "Tipo"
// @Param        number       query  int     true   "Número"
// @Param        fiscal_year  query  string  true   "Ejercicio"
// @Param        exclude_id   query  string  false  "Documento a excluir (edición)"
// @Success      200  {object}  dto.ExistsResponse
// @Router       /api/documents/exists [get]
func (h *DocumentHandler) Exists(c *fiber.Ctx) error {
	typeID := c.Query("type_id")
	number := c.QueryInt("number", 0)
	fiscalYear := c.Query("fiscal_year")
	if typeID == "" || number == 0 || fiscalYear == "" {
		return h.write(c, domain.NewValidationError("", "los campos tipo, número y ejercicio no pueden estar vacíos"))
	}
	exists, err := h.uc.Exists(c.UserContext(), typeID, number, fiscalYear, c.Query("exclude_id"))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(dto.ExistsResponse{Exists: exists})
}

// Delete elimina el documento y en cascada sus transferencias.
// @Router /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
