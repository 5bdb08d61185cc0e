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

var _ repository.PuntoVentaRepository = (*PuntoVentaRepo)(nil)

// PuntoVentaRepo implementación CRUD de puntos de venta sobre PostgreSQL.
type PuntoVentaRepo struct {
	q Querier
}

// NewPuntoVentaRepository construye el adaptador.
func NewPuntoVentaRepository(q Querier) *PuntoVentaRepo {
	return &PuntoVentaRepo{q: q}
}

const puntoVentaCols = `id, tipo_documento, numero_documento, nombre, email, telefono, direccion, estado, id_externo_db_data, created_by, updated_by, created_at, updated_at`

// Create persiste un punto de venta nuevo.
func (r *PuntoVentaRepo) Create(ctx context.Context, pv *entity.PuntoVenta) error {
	query := `
		INSERT INTO punto_venta (tipo_documento, numero_documento, nombre, email, telefono, direccion, estado, id_externo_db_data, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		string(pv.TipoDocumento), pv.NumeroDocumento, pv.Nombre, pv.Email,
		pv.Telefono, pv.Direccion, pv.Estado, pv.IDExternoDBData,
		pv.CreatedBy, pv.UpdatedBy, pv.CreatedAt, pv.UpdatedAt,
	).Scan(&pv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert punto de venta: %w", err)
	}
	return nil
}

// GetByID obtiene un punto de venta por id. nil, nil si no hay fila.
func (r *PuntoVentaRepo) GetByID(ctx context.Context, id int64) (*entity.PuntoVenta, error) {
	query := `SELECT ` + puntoVentaCols + ` FROM punto_venta WHERE id = $1`
	return r.scanPuntoVenta(ctx, query, id)
}

// List lista puntos de venta con filtros y paginación, junto al total.
func (r *PuntoVentaRepo) List(ctx context.Context, f repository.FiltroEntidad, limit, offset int) ([]*entity.PuntoVenta, int, error) {
	where := ` WHERE ($1 = '' OR nombre ILIKE '%' || $1 || '%' OR numero_documento ILIKE '%' || $1 || '%')
		AND ($2 = '' OR estado = $2)
		AND ($3 = '' OR tipo_documento = $3)`
	args := []any{f.Search, f.Estado, f.TipoDocumento}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM punto_venta`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count puntos de venta: %w", err)
	}

	query := `SELECT ` + puntoVentaCols + ` FROM punto_venta` + where + ` ORDER BY id DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list puntos de venta: %w", err)
	}
	defer rows.Close()

	var list []*entity.PuntoVenta
	for rows.Next() {
		var pv entity.PuntoVenta
		var tipoDoc string
		if err := rows.Scan(
			&pv.ID, &tipoDoc, &pv.NumeroDocumento, &pv.Nombre, &pv.Email,
			&pv.Telefono, &pv.Direccion, &pv.Estado, &pv.IDExternoDBData,
			&pv.CreatedBy, &pv.UpdatedBy, &pv.CreatedAt, &pv.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan punto de venta: %w", err)
		}
		pv.TipoDocumento = entity.TipoDocumento(tipoDoc)
		list = append(list, &pv)
	}
	return list, total, rows.Err()
}

// Update actualiza los campos editables de un punto de venta.
func (r *PuntoVentaRepo) Update(ctx context.Context, pv *entity.PuntoVenta) error {
	query := `
		UPDATE punto_venta
		SET numero_documento = $2, nombre = $3, email = $4, telefono = $5,
			direccion = $6, estado = $7, updated_by = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		pv.ID, pv.NumeroDocumento, pv.Nombre, pv.Email, pv.Telefono,
		pv.Direccion, pv.Estado, pv.UpdatedBy, pv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update punto de venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsByDocumento chequeo de unicidad de documento, opcionalmente excluyendo un id.
func (r *PuntoVentaRepo) ExistsByDocumento(ctx context.Context, numeroDocumento string, excludeID *int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM punto_venta WHERE numero_documento = $1 AND ($2::bigint IS NULL OR id <> $2))`
	var exists bool
	if err := r.q.QueryRow(ctx, query, numeroDocumento, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists punto de venta por documento: %w", err)
	}
	return exists, nil
}

// ExistsByEmail chequeo de unicidad de email, opcionalmente excluyendo un id.
func (r *PuntoVentaRepo) ExistsByEmail(ctx context.Context, email string, excludeID *int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM punto_venta WHERE email = $1 AND ($2::bigint IS NULL OR id <> $2))`
	var exists bool
	if err := r.q.QueryRow(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists punto de venta por email: %w", err)
	}
	return exists, nil
}

func (r *PuntoVentaRepo) scanPuntoVenta(ctx context.Context, query string, args ...any) (*entity.PuntoVenta, error) {
	var pv entity.PuntoVenta
	var tipoDoc string
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&pv.ID, &tipoDoc, &pv.NumeroDocumento, &pv.Nombre, &pv.Email,
		&pv.Telefono, &pv.Direccion, &pv.Estado, &pv.IDExternoDBData,
		&pv.CreatedBy, &pv.UpdatedBy, &pv.CreatedAt, &pv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get punto de venta: %w", err)
	}
	pv.TipoDocumento = entity.TipoDocumento(tipoDoc)
	return &pv, nil
}
