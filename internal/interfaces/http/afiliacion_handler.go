package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/application/usecase"
	"github.com/multisoat/certificados-api/internal/domain/repository"
)

// AfiliacionHandler administración de afiliaciones punto de venta ↔ proveedor (protegido).
type AfiliacionHandler struct {
	uc *usecase.AfiliacionUseCase
}

// NewAfiliacionHandler construye el handler.
func NewAfiliacionHandler(uc *usecase.AfiliacionUseCase) *AfiliacionHandler {
	return &AfiliacionHandler{uc: uc}
}

// Create crea una afiliación en estado pendiente de aprobación.
func (h *AfiliacionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAfiliacionRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), in, GetAuditContext(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondCreated(c, out)
}

// GetByID devuelve una afiliación por id.
func (h *AfiliacionHandler) GetByID(c *fiber.Ctx) error {
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

// List lista afiliaciones filtrables por punto de venta, proveedor y estado.
func (h *AfiliacionHandler) List(c *fiber.Ctx) error {
	page := pageQuery(c)
	f := repository.FiltroAfiliacion{
		IDPuntoVenta: queryInt64Ptr(c, "id_punto_venta"),
		IDProveedor:  queryInt64Ptr(c, "id_proveedor"),
		Estado:       c.Query("estado"),
	}
	out, pagination, err := h.uc.List(c.Context(), f, page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondList(c, out, pagination)
}

// UpdateEstado transiciona el estado de la afiliación.
func (h *AfiliacionHandler) UpdateEstado(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "id inválido")
	}
	var in dto.UpdateAfiliacionRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.UpdateEstado(c.Context(), id, in, GetAuditContext(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, out)
}

// Delete cancela la afiliación.
func (h *AfiliacionHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "id inválido")
	}
	if err := h.uc.Delete(c.Context(), id, GetAuditContext(c)); err != nil {
		return respondDomainError(c, err)
	}
	return respondMessage(c, "afiliación cancelada")
}
