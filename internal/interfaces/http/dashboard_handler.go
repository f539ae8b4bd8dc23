package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/zoesacks/seguimiento-de-expedientes/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	errorWriter
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, ew errorWriter) *DashboardHandler {
	return &DashboardHandler{errorWriter: ew, uc: uc}
}

// GetSummary devuelve el resumen de documentos y transferencias.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_documents, documents_by_sector, in_transit,
// confirmed, stale_transfers, stale_after_days, date_label).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(summary)
}
