package correo

import (
	"context"

	"github.com/google/uuid"

	"github.com/multisoat/certificados-api/internal/application/registro"
	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/pkg/logger"
)

var _ registro.Invitador = (*Invitador)(nil)

// Invitador despacha invitaciones de alta a emails sin cuenta.
//
// Hoy el envío real lo hace el frontend contra el proveedor de identidad;
// el backend solo genera el token de invitación y lo deja trazado. Cuando
// se integre el envío SMTP este componente es el punto de enganche.
type Invitador struct {
	log *logger.Logger
}

// NewInvitador construye el despachador de invitaciones.
func NewInvitador(log *logger.Logger) *Invitador {
	return &Invitador{log: log}
}

// Send genera el token de invitación para el email y lo registra.
// Devuelve true si la invitación quedó despachada.
func (i *Invitador) Send(ctx context.Context, email string, tipo entity.TipoEntidad, idEntidad int64) bool {
	token := uuid.New()

	i.log.Info().
		Str("email", email).
		Str("tipo_entidad", string(tipo)).
		Int64("id_entidad", idEntidad).
		Str("token_invitacion", token.String()).
		Msg("invitación de registro despachada")

	return true
}
