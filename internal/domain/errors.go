package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el usuario o email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrReferenceNotFound  = errors.New("la referencia indicada no existe")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrIntegrity          = errors.New("la hoja de ruta fue alterada o no tiene resumen de integridad")

	// ErrValidation es el único tipo de fallo de validación; todo *ValidationError lo satisface con errors.Is.
	ErrValidation = errors.New("validación fallida")

	// ErrDocumentAlreadyRegistered se devuelve al guardar un documento cuyo (tipo, número, ejercicio) ya existe.
	ErrDocumentAlreadyRegistered = NewValidationError("", "el documento ya está registrado en el sistema")
)

// ValidationError fallo de validación de una entidad. Field puede ir vacío si aplica a varios campos.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye un error de validación.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is permite errors.Is(err, ErrValidation) para cualquier ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsValidation indica si err es (o envuelve) un fallo de validación.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
