package ports

import (
	"context"
	"time"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
)

// RouteSheet recorrido completo de un documento: datos del expediente y sus transferencias en orden cronológico.
type RouteSheet struct {
	Document    *entity.Document
	Sector      *entity.Sector // nil si el documento no tiene sector
	Owner       *entity.User   // nil si el documento no tiene propietario
	Transfers   []*entity.Transfer
	Users       map[string]*entity.User // emisores y receptores por ID
	GeneratedAt time.Time
}

// RouteSheetBuilder serializa la hoja de ruta (XML con resumen de integridad) y verifica hojas ya emitidas.
type RouteSheetBuilder interface {
	BuildRouteSheet(ctx context.Context, sheet RouteSheet) ([]byte, error)
	// VerifyRouteSheet devuelve domain.ErrIntegrity si el contenido no coincide con su resumen.
	VerifyRouteSheet(ctx context.Context, data []byte) error
}
