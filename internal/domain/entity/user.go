package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operador"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa una identidad del directorio de usuarios (propietario, emisor o receptor).
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, operador
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidUserStatus indica si s es un estado de cuenta conocido.
func IsValidUserStatus(s string) bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// IsValidRole indica si role es un rol conocido.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleOperator
}
