package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/application/usecase"
	"github.com/multisoat/certificados-api/internal/domain/repository"
)

// DistribuidorHandler CRUD de distribuidores (protegido).
type DistribuidorHandler struct {
	uc *usecase.DistribuidorUseCase
}

// NewDistribuidorHandler construye el handler.
func NewDistribuidorHandler(uc *usecase.DistribuidorUseCase) *DistribuidorHandler {
	return &DistribuidorHandler{uc: uc}
}

// Create da de alta un distribuidor.
func (h *DistribuidorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDistribuidorRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), in, GetAuditContext(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondCreated(c, out)
}

// GetByID devuelve un distribuidor por id.
func (h *DistribuidorHandler) GetByID(c *fiber.Ctx) error {
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

// List lista distribuidores, acotables a un proveedor con ?id_proveedor=.
func (h *DistribuidorHandler) List(c *fiber.Ctx) error {
	page := pageQuery(c)
	f := repository.FiltroEntidad{
		Search:        c.Query("search"),
		Estado:        c.Query("estado"),
		TipoDocumento: c.Query("tipo_documento"),
		IDProveedor:   queryInt64Ptr(c, "id_proveedor"),
	}
	out, pagination, err := h.uc.List(c.Context(), f, page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondList(c, out, pagination)
}

// Update actualización parcial del distribuidor.
func (h *DistribuidorHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "id inválido")
	}
	var in dto.UpdateDistribuidorRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), id, in, GetAuditContext(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, out)
}

// Delete baja lógica del distribuidor.
func (h *DistribuidorHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "id inválido")
	}
	if err := h.uc.Delete(c.Context(), id, GetAuditContext(c)); err != nil {
		return respondDomainError(c, err)
	}
	return respondMessage(c, "distribuidor dado de baja")
}
