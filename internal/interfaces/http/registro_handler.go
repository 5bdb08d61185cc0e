package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/application/registro"
	"github.com/multisoat/certificados-api/internal/domain/entity"
)

// RegistroHandler expone el flujo de registro de entidades con vinculación de usuario.
type RegistroHandler struct {
	svc *registro.Service
}

// NewRegistroHandler construye el handler.
func NewRegistroHandler(svc *registro.Service) *RegistroHandler {
	return &RegistroHandler{svc: svc}
}

// RegisterEntity registra una entidad del tipo indicado en la ruta.
// El resultado compuesto siempre viaja con status 200; success indica el desenlace.
func (h *RegistroHandler) RegisterEntity(c *fiber.Ctx) error {
	tipo := entity.TipoEntidad(c.Params("tipo_entidad"))
	if !tipo.Valid() {
		return respondError(c, fiber.StatusBadRequest, "tipo de entidad desconocido: "+c.Params("tipo_entidad"))
	}

	var in dto.RegistroEntidadRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}

	result := h.svc.RegisterEntity(c.Context(), tipo, in, GetAuditContext(c))
	return respondOK(c, result)
}

// RegisterPuntoVentaMultiple registra un punto de venta afiliado a varios proveedores.
func (h *RegistroHandler) RegisterPuntoVentaMultiple(c *fiber.Ctx) error {
	var in dto.RegistroPVMultipleRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if len(in.IDsProveedores) == 0 {
		return respondError(c, fiber.StatusBadRequest, "ids_proveedores es requerido")
	}

	result := h.svc.RegisterPuntoVentaWithMultipleProviders(c.Context(), in, GetAuditContext(c))
	return respondOK(c, result)
}
