package usecase

import (
	"strings"
	"time"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/dto"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
)

// parseDate interpreta una fecha YYYY-MM-DD; nil o vacío devuelven nil (sin fecha).
func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, domain.NewValidationError(field, "fecha inválida, formato esperado YYYY-MM-DD")
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dto.DateLayout)
}
