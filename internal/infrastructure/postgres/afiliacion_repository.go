package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/multisoat/certificados-api/internal/domain"
	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/internal/domain/repository"
)

var _ repository.AfiliacionRepository = (*AfiliacionRepo)(nil)

// AfiliacionRepo implementación de AfiliacionRepository sobre PostgreSQL.
type AfiliacionRepo struct {
	q Querier
}

// NewAfiliacionRepository construye el adaptador.
func NewAfiliacionRepository(q Querier) *AfiliacionRepo {
	return &AfiliacionRepo{q: q}
}

const afiliacionCols = `id, id_punto_venta, id_proveedor, id_distribuidor, estado, created_by, updated_by, created_at, updated_at`

// Exists indica si ya hay afiliación para el par (punto de venta, proveedor),
// cualquiera sea su estado.
func (r *AfiliacionRepo) Exists(ctx context.Context, idPuntoVenta, idProveedor int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM afiliacion_pv_proveedor WHERE id_punto_venta = $1 AND id_proveedor = $2)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, idPuntoVenta, idProveedor).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists afiliación: %w", err)
	}
	return exists, nil
}

// Create persiste una afiliación nueva.
func (r *AfiliacionRepo) Create(ctx context.Context, a *entity.Afiliacion) error {
	query := `
		INSERT INTO afiliacion_pv_proveedor (id_punto_venta, id_proveedor, id_distribuidor, estado, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		a.IDPuntoVenta, a.IDProveedor, a.IDDistribuidor, a.Estado,
		a.CreatedBy, a.UpdatedBy, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert afiliación: %w", err)
	}
	return nil
}

// GetByID obtiene una afiliación por id. nil, nil si no hay fila.
func (r *AfiliacionRepo) GetByID(ctx context.Context, id int64) (*entity.Afiliacion, error) {
	query := `SELECT ` + afiliacionCols + ` FROM afiliacion_pv_proveedor WHERE id = $1`
	var a entity.Afiliacion
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.IDPuntoVenta, &a.IDProveedor, &a.IDDistribuidor, &a.Estado,
		&a.CreatedBy, &a.UpdatedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get afiliación: %w", err)
	}
	return &a, nil
}

// List lista afiliaciones con filtros y paginación, junto al total.
func (r *AfiliacionRepo) List(ctx context.Context, f repository.FiltroAfiliacion, limit, offset int) ([]*entity.Afiliacion, int, error) {
	where := ` WHERE ($1::bigint IS NULL OR id_punto_venta = $1)
		AND ($2::bigint IS NULL OR id_proveedor = $2)
		AND ($3 = '' OR estado = $3)`
	args := []any{f.IDPuntoVenta, f.IDProveedor, f.Estado}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM afiliacion_pv_proveedor`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count afiliaciones: %w", err)
	}

	query := `SELECT ` + afiliacionCols + ` FROM afiliacion_pv_proveedor` + where + ` ORDER BY id DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list afiliaciones: %w", err)
	}
	defer rows.Close()

	var list []*entity.Afiliacion
	for rows.Next() {
		var a entity.Afiliacion
		if err := rows.Scan(
			&a.ID, &a.IDPuntoVenta, &a.IDProveedor, &a.IDDistribuidor, &a.Estado,
			&a.CreatedBy, &a.UpdatedBy, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan afiliación: %w", err)
		}
		list = append(list, &a)
	}
	return list, total, rows.Err()
}

// UpdateEstado cambia el estado de la afiliación (aprobación, suspensión, baja lógica).
func (r *AfiliacionRepo) UpdateEstado(ctx context.Context, id int64, estado string, audit entity.Auditoria) error {
	query := `UPDATE afiliacion_pv_proveedor SET estado = $2, updated_by = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, estado, audit.UpdatedBy, audit.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update estado afiliación: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
