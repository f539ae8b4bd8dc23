package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/zoesacks/seguimiento-de-expedientes/internal/application/analytics"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/auth"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/usecase"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/logger"
)

// ReadinessChecker lo implementa el backend de persistencia (Ping a PostgreSQL).
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SectorUC       *usecase.SectorUseCase
	DocumentTypeUC *usecase.DocumentTypeUseCase
	DocumentUC     *usecase.DocumentUseCase
	TransferUC     *usecase.TransferUseCase
	RouteSheetUC   *usecase.RouteSheetUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
	Readiness      ReadinessChecker // opcional
	Logger         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	ew := errorWriter{log: log.Component("http")}

	app.Get("/health", healthHandler(deps.Readiness))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, ew)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Post("/auth/register", adminOnly, authHandler.Register)
	protected.Get("/users", authHandler.ListUsers)
	protected.Patch("/users/:id/status", adminOnly, authHandler.SetStatus)
	protected.Delete("/users/:id", adminOnly, authHandler.DeleteUser)

	// Sectors: lectura para todos, escritura solo admin
	sectors := protected.Group("/sectors")
	sectorHandler := NewSectorHandler(deps.SectorUC, ew)
	sectors.Get("/", sectorHandler.List)
	sectors.Get("/:id", sectorHandler.GetByID)
	sectors.Post("/", adminOnly, sectorHandler.Create)
	sectors.Put("/:id", adminOnly, sectorHandler.Update)
	sectors.Delete("/:id", adminOnly, sectorHandler.Delete)

	// Document types: lectura para todos, escritura solo admin
	docTypes := protected.Group("/document-types")
	docTypeHandler := NewDocumentTypeHandler(deps.DocumentTypeUC, ew)
	docTypes.Get("/", docTypeHandler.List)
	docTypes.Get("/:id", docTypeHandler.GetByID)
	docTypes.Post("/", adminOnly, docTypeHandler.Create)
	docTypes.Put("/:id", adminOnly, docTypeHandler.Update)
	docTypes.Delete("/:id", adminOnly, docTypeHandler.Delete)

	// Documents
	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.DocumentUC, ew)
	documents.Get("/exists", documentHandler.Exists)
	documents.Get("/", documentHandler.List)
	documents.Post("/", documentHandler.Create)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Put("/:id", documentHandler.Update)
	documents.Delete("/:id", documentHandler.Delete)

	// Hoja de ruta (XML)
	routeSheetHandler := NewRouteSheetHandler(deps.RouteSheetUC, ew)
	documents.Get("/:id/route-sheet", routeSheetHandler.Download)
	protected.Post("/route-sheets/verify", routeSheetHandler.Verify)

	// Transfers
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC, ew)
	transfers.Get("/", transferHandler.List)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Put("/:id", transferHandler.Update)
	transfers.Delete("/:id", transferHandler.Delete)
	transfers.Post("/:id/confirm", transferHandler.Confirm)
	transfers.Get("/:id/receipt", transferHandler.Receipt)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, ew)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}

func healthHandler(readiness ReadinessChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if readiness != nil {
			if err := readiness.Ready(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "error": err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
