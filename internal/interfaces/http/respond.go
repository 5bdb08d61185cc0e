package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/domain"
)

// respondOK respuesta 200 con data.
func respondOK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(dto.APIResponse{
		Success: true,
		Status:  fiber.StatusOK,
		Data:    data,
	})
}

// respondCreated respuesta 201 con data.
func respondCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(dto.APIResponse{
		Success: true,
		Status:  fiber.StatusCreated,
		Data:    data,
	})
}

// respondList respuesta 200 con data y metadatos de paginación.
func respondList(c *fiber.Ctx, data interface{}, pagination *dto.Pagination) error {
	return c.Status(fiber.StatusOK).JSON(dto.APIResponse{
		Success:    true,
		Status:     fiber.StatusOK,
		Data:       data,
		Pagination: pagination,
	})
}

// respondMessage respuesta 200 solo con mensaje (deletes, acciones).
func respondMessage(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(dto.APIResponse{
		Success: true,
		Status:  fiber.StatusOK,
		Message: message,
	})
}

// respondError respuesta de error con status explícito.
func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.APIResponse{
		Success: false,
		Status:  status,
		Error:   &dto.ErrorBody{Message: message},
	})
}

// respondDomainError traduce los errores sentinel del dominio a status HTTP.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return respondError(c, fiber.StatusUnauthorized, "credenciales inválidas")
	case errors.Is(err, domain.ErrForbidden):
		return respondError(c, fiber.StatusForbidden, "acceso denegado")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return respondError(c, fiber.StatusNotFound, "recurso no encontrado")
	case errors.Is(err, domain.ErrDuplicate):
		// Los duplicados se reportan como error de datos, igual que la validación.
		return respondError(c, fiber.StatusBadRequest, "ya existe un registro con esos datos")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respondError(c, fiber.StatusBadRequest, "el email ya está registrado")
	case errors.Is(err, domain.ErrConflict):
		return respondError(c, fiber.StatusConflict, err.Error())
	default:
		return respondError(c, fiber.StatusInternalServerError, "error interno")
	}
}
