package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/auth"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/dto"
)

// AuthHandler maneja login, registro de usuarios y el directorio.
type AuthHandler struct {
	uc *auth.AuthUseCase
	errorWriter
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, ew errorWriter) *AuthHandler {
	return &AuthHandler{uc: uc, errorWriter: ew}
}

// Register godoc
// @Summary      Registrar usuario (solo admin)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, password, rol"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return h.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username y password son requeridos"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// ListUsers godoc
// @Summary      Directorio de usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Activar o desactivar un usuario (solo admin)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del usuario"
// @Param        body  body  dto.UpdateUserStatusRequest  true  "active | inactive"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/status [patch]
func (h *AuthHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.UpdateUserStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetUserStatus(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// DeleteUser elimina la cuenta y en cascada sus documentos y transferencias.
func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.uc.DeleteUser(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return h.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
