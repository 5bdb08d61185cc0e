package postgres

import (
	"context"
	"fmt"

	"github.com/multisoat/certificados-api/internal/domain"
	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/internal/domain/repository"
)

var _ repository.UsuarioRolRepository = (*UsuarioRolRepo)(nil)

// UsuarioRolRepo asignaciones de rol sobre PostgreSQL (usable con pool o tx).
type UsuarioRolRepo struct {
	q Querier
}

// NewUsuarioRolRepository construye el adaptador.
func NewUsuarioRolRepository(q Querier) *UsuarioRolRepo {
	return &UsuarioRolRepo{q: q}
}

// Create persiste una asignación de rol.
func (r *UsuarioRolRepo) Create(ctx context.Context, ur *entity.UsuarioRol) error {
	query := `
		INSERT INTO usuario_rol (id_usuario, id_rol, tipo_entidad, id_entidad, activo, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		ur.IDUsuario, ur.IDRol, string(ur.TipoEntidad), ur.IDEntidad, ur.Activo,
		ur.CreatedBy, ur.UpdatedBy, ur.CreatedAt, ur.UpdatedAt,
	).Scan(&ur.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert usuario_rol: %w", err)
	}
	return nil
}

// ListActivosByUsuario devuelve las asignaciones activas con el código de rol resuelto.
func (r *UsuarioRolRepo) ListActivosByUsuario(ctx context.Context, idUsuario int64) ([]entity.RolAsignado, error) {
	query := `
		SELECT ur.tipo_entidad, ur.id_entidad, rol.codigo
		FROM usuario_rol ur
		JOIN rol ON rol.id = ur.id_rol
		WHERE ur.id_usuario = $1 AND ur.activo = true
		ORDER BY ur.id`
	rows, err := r.q.Query(ctx, query, idUsuario)
	if err != nil {
		return nil, fmt.Errorf("list usuario_rol: %w", err)
	}
	defer rows.Close()

	var list []entity.RolAsignado
	for rows.Next() {
		var a entity.RolAsignado
		var tipo string
		if err := rows.Scan(&tipo, &a.IDEntidad, &a.RolCodigo); err != nil {
			return nil, fmt.Errorf("scan usuario_rol: %w", err)
		}
		a.TipoEntidad = entity.TipoEntidad(tipo)
		list = append(list, a)
	}
	return list, rows.Err()
}

// ExistsActivo indica si hay una asignación activa exacta para (usuario, tipo, entidad).
func (r *UsuarioRolRepo) ExistsActivo(ctx context.Context, idUsuario int64, tipo entity.TipoEntidad, idEntidad int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM usuario_rol
			WHERE id_usuario = $1 AND tipo_entidad = $2 AND id_entidad = $3 AND activo = true
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, idUsuario, string(tipo), idEntidad).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists usuario_rol: %w", err)
	}
	return exists, nil
}
