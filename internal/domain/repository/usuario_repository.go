package repository

import (
	"context"

	"github.com/multisoat/certificados-api/internal/domain/entity"
)

// UsuarioRepository puerto de persistencia para cuentas de usuario.
// Los Get* devuelven nil, nil cuando no hay fila.
type UsuarioRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	GetByDocumento(ctx context.Context, tipo entity.TipoDocumento, numeroDocumento string) (*entity.Usuario, error)

	// CreatePendiente inserta un usuario placeholder en estado PENDIENTE_USUARIO.
	// Idempotente por email: si una carrera ya insertó la cuenta, devuelve el id
	// existente en lugar de fallar.
	CreatePendiente(ctx context.Context, u *entity.Usuario) (int64, error)

	// ExistsByEmail / ExistsByDocumento para chequeos de disponibilidad,
	// opcionalmente excluyendo un usuario (updates).
	ExistsByEmail(ctx context.Context, email string, excludeID *int64) (bool, error)
	ExistsByDocumento(ctx context.Context, tipo entity.TipoDocumento, numeroDocumento string, excludeID *int64) (bool, error)
}

// RolRepository catálogo de roles del sistema.
type RolRepository interface {
	// GetByCodigo devuelve nil, nil si el código no existe.
	GetByCodigo(ctx context.Context, codigo string) (*entity.Rol, error)
}

// UsuarioRolRepository asignaciones de rol por usuario y entidad.
type UsuarioRolRepository interface {
	Create(ctx context.Context, ur *entity.UsuarioRol) error

	// ListActivosByUsuario devuelve las asignaciones activas con el código de rol resuelto.
	ListActivosByUsuario(ctx context.Context, idUsuario int64) ([]entity.RolAsignado, error)

	// ExistsActivo indica si hay una asignación activa exacta para (usuario, tipo, entidad).
	ExistsActivo(ctx context.Context, idUsuario int64, tipo entity.TipoEntidad, idEntidad int64) (bool, error)
}
