package usecase

import (
	"strings"
	"time"

	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/internal/domain/validation"
)

// strOpcional convierte un string en puntero, con vacío como NULL.
func strOpcional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// nombreOpcional normaliza el nombre antes de convertirlo a puntero.
func nombreOpcional(s string) *string {
	s = validation.NormalizeNombre(s)
	if s == "" {
		return nil
	}
	return &s
}

// aplicarUpdate estampa el actor y la hora de actualización sin tocar los campos de creación.
func aplicarUpdate(a *entity.Auditoria, audit dto.AuditContext, now time.Time) {
	campos := audit.CamposUpdate(now)
	a.UpdatedBy = campos.UpdatedBy
	a.UpdatedAt = campos.UpdatedAt
}
