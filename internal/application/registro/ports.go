package registro

import (
	"context"

	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/internal/domain/repository"
)

// Verificador subconjunto del servicio de verificación que consume el registro.
type Verificador interface {
	CheckEmailAccess(ctx context.Context, email string) dto.AccessInfo
}

// RegistroExterno resuelve el documento a una referencia en la base externa
// db_data (RENIEC/SUNAT). El contrato es degradar siempre: sin token, con error
// de red o con payload inesperado devuelve nil, nunca un error. La firma sin
// error hace visible ese contrato en el tipo.
type RegistroExterno interface {
	ResolveExternalReference(ctx context.Context, tipo entity.TipoDocumento, numero string, supplied *int64) *int64
}

// Invitador despacha la invitación de alta a un email sin cuenta.
// Fire-and-forget: devuelve si se entregó; un fallo no revierte el registro.
type Invitador interface {
	Send(ctx context.Context, email string, tipo entity.TipoEntidad, idEntidad int64) bool
}

// TxRunner ejecuta los pasos de escritura del registro (crear entidad,
// vincular o crear usuario pendiente) dentro de una sola transacción.
type TxRunner interface {
	RunRegistro(ctx context.Context, fn func(
		entidades repository.EntidadRepository,
		usuarios repository.UsuarioRepository,
		roles repository.RolRepository,
		usuarioRoles repository.UsuarioRolRepository,
	) error) error
}
