package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/multisoat/certificados-api/internal/application/verificacion"
	"github.com/multisoat/certificados-api/internal/domain/entity"
)

// VerificacionHandler consultas de acceso previas al registro.
// Rutas públicas: el frontend las usa antes de que exista sesión.
type VerificacionHandler struct {
	svc *verificacion.Service
}

// NewVerificacionHandler construye el handler.
func NewVerificacionHandler(svc *verificacion.Service) *VerificacionHandler {
	return &VerificacionHandler{svc: svc}
}

// CheckEmail verifica si un email ya tiene cuenta y a qué entidades accede.
func (h *VerificacionHandler) CheckEmail(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return respondError(c, fiber.StatusBadRequest, "email es requerido")
	}
	return respondOK(c, h.svc.CheckEmailAccess(c.Context(), email))
}

// CheckDocumento verifica el acceso asociado a un documento de identidad.
func (h *VerificacionHandler) CheckDocumento(c *fiber.Ctx) error {
	tipo := entity.TipoDocumento(strings.ToUpper(strings.TrimSpace(c.Query("tipo"))))
	numero := strings.TrimSpace(c.Query("numero"))
	if tipo == "" || numero == "" {
		return respondError(c, fiber.StatusBadRequest, "tipo y numero son requeridos")
	}
	return respondOK(c, h.svc.CheckDocumentAccess(c.Context(), tipo, numero))
}
