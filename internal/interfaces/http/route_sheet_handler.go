package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/dto"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/usecase"
)

// RouteSheetHandler exporta y verifica hojas de ruta.
type RouteSheetHandler struct {
	errorWriter
	uc *usecase.RouteSheetUseCase
}

// NewRouteSheetHandler construye el handler.
func NewRouteSheetHandler(uc *usecase.RouteSheetUseCase, ew errorWriter) *RouteSheetHandler {
	return &RouteSheetHandler{errorWriter: ew, uc: uc}
}

// Download godoc
// @Summary      Descargar hoja de ruta XML
// @Description  Documento y transferencias en orden cronológico, con resumen de integridad SHA-256 (C14N).
// @Tags         documents
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/route-sheet [get]
func (h *RouteSheetHandler) Download(c *fiber.Ctx) error {
	xmlBytes, filename, err := h.uc.Build(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.write(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(xmlBytes)
}

// Verify recibe el XML en el cuerpo; 200 si el resumen coincide, 422 INTEGRITY_MISMATCH si no.
func (h *RouteSheetHandler) Verify(c *fiber.Ctx) error {
	if err := h.uc.Verify(c.UserContext(), c.Body()); err != nil {
		return h.write(c, err)
	}
	return c.JSON(dto.RouteSheetVerification{Valid: true})
}
