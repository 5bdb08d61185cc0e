package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/application/usecase"
	"github.com/multisoat/certificados-api/internal/domain/repository"
)

// ProveedorHandler CRUD de proveedores (protegido).
type ProveedorHandler struct {
	uc *usecase.ProveedorUseCase
}

// NewProveedorHandler construye el handler.
func NewProveedorHandler(uc *usecase.ProveedorUseCase) *ProveedorHandler {
	return &ProveedorHandler{uc: uc}
}

// Create da de alta un proveedor.
func (h *ProveedorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), in, GetAuditContext(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondCreated(c, out)
}

// GetByID devuelve un proveedor por id.
func (h *ProveedorHandler) GetByID(c *fiber.Ctx) error {
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

// List lista proveedores con filtros y paginación.
func (h *ProveedorHandler) List(c *fiber.Ctx) error {
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

// Update actualización parcial del proveedor.
func (h *ProveedorHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "id inválido")
	}
	var in dto.UpdateProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), id, in, GetAuditContext(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, out)
}

// Delete baja lógica del proveedor.
func (h *ProveedorHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "id inválido")
	}
	if err := h.uc.Delete(c.Context(), id, GetAuditContext(c)); err != nil {
		return respondDomainError(c, err)
	}
	return respondMessage(c, "proveedor dado de baja")
}

// parseID lee el path param :id como int64.
func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// pageQuery lee page/limit con defaults del catálogo.
func pageQuery(c *fiber.Ctx) dto.PageQuery {
	p := dto.PageQuery{
		Page:  c.QueryInt("page"),
		Limit: c.QueryInt("limit"),
	}
	p.Normalize()
	return p
}

// queryInt64Ptr lee un query param numérico opcional como puntero.
func queryInt64Ptr(c *fiber.Ctx, key string) *int64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
