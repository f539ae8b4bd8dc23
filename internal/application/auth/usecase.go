package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/dto"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 8

// MaxPasswordBytes límite de bcrypt; más allá GenerateFromPassword falla.
const MaxPasswordBytes = 72

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso del directorio de usuarios: registro, login y listado.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el username ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, domain.NewValidationError("username", "el nombre de usuario es requerido")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.NewValidationError("password", "password debe tener al menos 8 caracteres")
	}
	if len(in.Password) > MaxPasswordBytes {
		return nil, domain.NewValidationError("password", "password no puede superar 72 bytes")
	}
	role := in.Role
	if role == "" {
		role = entity.RoleOperator
	}
	if !entity.IsValidRole(role) {
		return nil, domain.NewValidationError("role", "rol inválido: debe ser admin u operador")
	}
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = username
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// EnsureAdmin crea el administrador inicial si el username no existe. Devuelve true si lo creó.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	existing, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if _, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: username, Password: password, Role: entity.RoleAdmin}); err != nil {
		return false, err
	}
	return true, nil
}

// Login verifica username/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// ListUsers lista el directorio de usuarios (para elegir propietario, emisor o receptor).
func (uc *AuthUseCase) ListUsers(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.userRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// SetUserStatus activa o desactiva una cuenta. Un admin no puede desactivarse a sí mismo.
func (uc *AuthUseCase) SetUserStatus(ctx context.Context, actorID, id string, in dto.UpdateUserStatusRequest) (*dto.UserResponse, error) {
	if !entity.IsValidUserStatus(in.Status) {
		return nil, domain.NewValidationError("status", "estado inválido: debe ser active o inactive")
	}
	if id == actorID && in.Status != entity.UserStatusActive {
		return nil, domain.NewValidationError("status", "no puede desactivar su propia cuenta")
	}
	if err := uc.userRepo.UpdateStatus(ctx, id, in.Status); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

// DeleteUser borra una cuenta junto con sus documentos y transferencias.
func (uc *AuthUseCase) DeleteUser(ctx context.Context, actorID, id string) error {
	if id == actorID {
		return domain.NewValidationError("id", "no puede eliminar su propia cuenta")
	}
	return uc.userRepo.Delete(ctx, id)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
