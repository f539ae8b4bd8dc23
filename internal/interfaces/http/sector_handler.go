package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/dto"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/usecase"
)

// SectorHandler maneja las peticiones HTTP para Sector.
type SectorHandler struct {
	uc *usecase.SectorUseCase
	errorWriter
}

// NewSectorHandler construye el handler.
func NewSectorHandler(uc *usecase.SectorUseCase, ew errorWriter) *SectorHandler {
	return &SectorHandler{uc: uc, errorWriter: ew}
}

// Create godoc
// @Summary      Crear sector
// @Tags         sectors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSectorRequest  true  "Datos del sector"
// @Success      201   {object}  dto.SectorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sectors [post]
func (h *SectorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSectorRequest
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
// @Summary      Obtener sector por ID
// @Tags         sectors
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del sector"
// @Success      200  {object}  dto.SectorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sectors/{id} [get]
func (h *SectorHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar sector
// @Tags         sectors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del sector"
// @Param        body  body  dto.UpdateSectorRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.SectorResponse
// @Router       /api/sectors/{id} [put]
func (h *SectorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSectorRequest
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
// @Summary      Listar sectores
// @Tags         sectors
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.SectorListResponse
// @Router       /api/sectors [get]
func (h *SectorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// Delete elimina el sector y en cascada sus documentos.
// @Router /api/sectors/{id} [delete]
func (h *SectorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
