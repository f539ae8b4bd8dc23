package dto

// RouteSheetVerification resultado de verificar una hoja de ruta.
type RouteSheetVerification struct {
	Valid bool `json:"valid"`
}
