package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/application/usecase"
	"github.com/multisoat/certificados-api/internal/domain/repository"
)

// PuntoVentaHandler CRUD de puntos de venta (protegido).
type PuntoVentaHandler struct {
	uc *usecase.PuntoVentaUseCase
}

// NewPuntoVentaHandler construye el handler.
func NewPuntoVentaHandler(uc *usecase.PuntoVentaUseCase) *PuntoVentaHandler {
	return &PuntoVentaHandler{uc: uc}
}

// Create da de alta un punto de venta.
func (h *PuntoVentaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePuntoVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), in, GetAuditContext(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondCreated(c, out)
}

// GetByID devuelve un punto de venta por id.
func (h *PuntoVentaHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "id inválido")
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, out)
}

// List lista puntos de venta con filtros y paginación.
func (h *PuntoVentaHandler) List(c *fiber.Ctx) error {
	page := pageQuery(c)
	f := repository.FiltroEntidad{
		Search:        c.Query("search"),
		Estado:        c.Query("estado"),
		TipoDocumento: c.Query("tipo_documento"),
	}
	out, pagination, err := h.uc.List(c.Context(), f, page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondList(c, out, pagination)
}

// Update actualización parcial del punto de venta.
func (h *PuntoVentaHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "id inválido")
	}
	var in dto.UpdatePuntoVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), id, in, GetAuditContext(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, out)
}

// Delete baja lógica del punto de venta.
func (h *PuntoVentaHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "id inválido")
	}
	if err := h.uc.Delete(c.Context(), id, GetAuditContext(c)); err != nil {
		return respondDomainError(c, err)
	}
	return respondMessage(c, "punto de venta dado de baja")
}
