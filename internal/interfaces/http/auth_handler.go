package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/multisoat/certificados-api/internal/application/auth"
	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/domain"
)

// AuthHandler maneja login.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login verifica credenciales y emite el token de sesión.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return respondError(c, fiber.StatusBadRequest, "email y password son requeridos")
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		// No revelar si el email existe: usuario inexistente responde igual
		// que password incorrecto.
		if errors.Is(err, domain.ErrUserNotFound) {
			return respondError(c, fiber.StatusUnauthorized, "credenciales inválidas")
		}
		return respondDomainError(c, err)
	}
	return respondOK(c, out)
}
