package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/zoesacks/seguimiento-de-expedientes/internal/application/analytics"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/auth"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/usecase"
	infrapdf "github.com/zoesacks/seguimiento-de-expedientes/internal/infrastructure/pdf"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/infrastructure/xmlexport"
	httpRouter "github.com/zoesacks/seguimiento-de-expedientes/internal/interfaces/http"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/config"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	sectorUC := usecase.NewSectorUseCase(store.sectors)
	documentTypeUC := usecase.NewDocumentTypeUseCase(store.documentTypes)
	documentUC := usecase.NewDocumentUseCase(store.txRunner, store.documents)

	// PDF: constancia de transferencia
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	transferUC := usecase.NewTransferUseCase(store.transfers, store.documents, store.users, receiptGenerator)

	// XML: hoja de ruta con resumen de integridad
	routeSheetUC := usecase.NewRouteSheetUseCase(store.documents, store.sectors, store.transfers, store.users, xmlexport.NewRouteSheetBuilder())

	dashboardUC := appanalytics.NewDashboardUseCase(store.analytics, cfg.Dashboard.StaleAfterDays)

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.Username != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("username", cfg.Admin.Username).Msg("administrador inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el archivo generado)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Seguimiento de Expedientes API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		SectorUC:       sectorUC,
		DocumentTypeUC: documentTypeUC,
		DocumentUC:     documentUC,
		TransferUC:     transferUC,
		RouteSheetUC:   routeSheetUC,
		DashboardUC:    dashboardUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
		Readiness:      store.readiness,
		Logger:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
