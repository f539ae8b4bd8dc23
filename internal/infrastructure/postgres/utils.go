package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

// Querier es el subconjunto común de *pgxpool.Pool y pgx.Tx que usan los repositorios.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// rowScanner cubre pgx.Row y pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if pgCode(err) == codeUniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// isInvalidText verifica si un valor no pudo convertirse al tipo de la columna (ej. UUID mal formado).
func isInvalidText(err error) bool {
	return pgCode(err) == codeInvalidText
}

// mapWriteError traduce errores de escritura a errores de dominio; devuelve nil si no reconoce el error.
func mapWriteError(err, onUnique error) error {
	switch {
	case isUniqueViolation(err):
		return onUnique
	case isForeignKeyViolation(err):
		return domain.ErrReferenceNotFound
	case isInvalidText(err):
		return domain.ErrInvalidInput
	}
	return nil
}

// isNotFoundLookup trata un ID mal formado igual que uno inexistente.
func isNotFoundLookup(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidText(err)
}

// nullIfEmpty convierte "" en NULL para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// nullIfZero convierte 0 en NULL para columnas enteras opcionales.
func nullIfZero(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

// isUUID indica si s tiene formato UUID; los IDs mal formados nunca llegan a la base.
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// checkRefs devuelve ErrReferenceNotFound si alguna referencia opcional no vacía no es un UUID.
func checkRefs(ids ...string) error {
	for _, id := range ids {
		if id != "" && !isUUID(id) {
			return domain.ErrReferenceNotFound
		}
	}
	return nil
}
