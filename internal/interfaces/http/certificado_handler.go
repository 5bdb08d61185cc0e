package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/application/usecase"
	"github.com/multisoat/certificados-api/internal/domain/repository"
)

// CertificadoHandler inventario de certificados SOAT (protegido).
type CertificadoHandler struct {
	uc *usecase.CertificadoUseCase
}

// NewCertificadoHandler construye el handler.
func NewCertificadoHandler(uc *usecase.CertificadoUseCase) *CertificadoHandler {
	return &CertificadoHandler{uc: uc}
}

// Create registra un certificado nuevo.
func (h *CertificadoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCertificadoRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), in, GetAuditContext(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondCreated(c, out)
}

// GetByID devuelve un certificado por id.
func (h *CertificadoHandler) GetByID(c *fiber.Ctx) error {
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

// List lista certificados filtrables por proveedor, estado y serie.
func (h *CertificadoHandler) List(c *fiber.Ctx) error {
	page := pageQuery(c)
	f := repository.FiltroCertificado{
		IDProveedor: queryInt64Ptr(c, "id_proveedor"),
		Estado:      c.Query("estado"),
		Search:      c.Query("search"),
	}
	out, pagination, err := h.uc.List(c.Context(), f, page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondList(c, out, pagination)
}

// Update actualización parcial de precios o estado.
func (h *CertificadoHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "id inválido")
	}
	var in dto.UpdateCertificadoRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), id, in, GetAuditContext(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, out)
}

// Delete anula el certificado.
func (h *CertificadoHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "id inválido")
	}
	if err := h.uc.Delete(c.Context(), id, GetAuditContext(c)); err != nil {
		return respondDomainError(c, err)
	}
	return respondMessage(c, "certificado anulado")
}
