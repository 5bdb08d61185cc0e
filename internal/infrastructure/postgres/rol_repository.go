package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/internal/domain/repository"
)

var _ repository.RolRepository = (*RolRepo)(nil)

// RolRepo catálogo de roles sobre PostgreSQL (usable con pool o tx).
type RolRepo struct {
	q Querier
}

// NewRolRepository construye el adaptador.
func NewRolRepository(q Querier) *RolRepo {
	return &RolRepo{q: q}
}

// GetByCodigo obtiene un rol por código. nil, nil si no existe.
func (r *RolRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Rol, error) {
	query := `SELECT id, codigo, nombre, nivel FROM rol WHERE codigo = $1`
	var rol entity.Rol
	err := r.q.QueryRow(ctx, query, codigo).Scan(&rol.ID, &rol.Codigo, &rol.Nombre, &rol.Nivel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rol por código: %w", err)
	}
	return &rol, nil
}
