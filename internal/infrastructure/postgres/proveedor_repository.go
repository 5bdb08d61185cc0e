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

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

// ProveedorRepo implementación CRUD de proveedores sobre PostgreSQL.
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador.
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

const proveedorCols = `id, tipo_documento, numero_documento, razon_social, nombre, email, telefono, direccion, estado, id_externo_db_data, created_by, updated_by, created_at, updated_at`

// Create persiste un proveedor nuevo.
func (r *ProveedorRepo) Create(ctx context.Context, p *entity.Proveedor) error {
	query := `
		INSERT INTO proveedor (tipo_documento, numero_documento, razon_social, nombre, email, telefono, direccion, estado, id_externo_db_data, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		string(p.TipoDocumento), p.NumeroDocumento, p.RazonSocial, p.Nombre, p.Email,
		p.Telefono, p.Direccion, p.Estado, p.IDExternoDBData,
		p.CreatedBy, p.UpdatedBy, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por id. nil, nil si no hay fila.
func (r *ProveedorRepo) GetByID(ctx context.Context, id int64) (*entity.Proveedor, error) {
	query := `SELECT ` + proveedorCols + ` FROM proveedor WHERE id = $1`
	return r.scanProveedor(ctx, query, id)
}

// List lista proveedores con filtros y paginación, junto al total.
func (r *ProveedorRepo) List(ctx context.Context, f repository.FiltroEntidad, limit, offset int) ([]*entity.Proveedor, int, error) {
	where := ` WHERE ($1 = '' OR nombre ILIKE '%' || $1 || '%' OR razon_social ILIKE '%' || $1 || '%' OR numero_documento ILIKE '%' || $1 || '%')
		AND ($2 = '' OR estado = $2)
		AND ($3 = '' OR tipo_documento = $3)`
	args := []any{f.Search, f.Estado, f.TipoDocumento}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM proveedor`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count proveedores: %w", err)
	}

	query := `SELECT ` + proveedorCols + ` FROM proveedor` + where + ` ORDER BY id DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()

	var list []*entity.Proveedor
	for rows.Next() {
		var p entity.Proveedor
		var tipoDoc string
		if err := rows.Scan(
			&p.ID, &tipoDoc, &p.NumeroDocumento, &p.RazonSocial, &p.Nombre, &p.Email,
			&p.Telefono, &p.Direccion, &p.Estado, &p.IDExternoDBData,
			&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan proveedor: %w", err)
		}
		p.TipoDocumento = entity.TipoDocumento(tipoDoc)
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// Update actualiza los campos editables de un proveedor.
func (r *ProveedorRepo) Update(ctx context.Context, p *entity.Proveedor) error {
	query := `
		UPDATE proveedor
		SET numero_documento = $2, razon_social = $3, nombre = $4, email = $5,
			telefono = $6, direccion = $7, estado = $8, updated_by = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.NumeroDocumento, p.RazonSocial, p.Nombre, p.Email,
		p.Telefono, p.Direccion, p.Estado, p.UpdatedBy, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update proveedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsByDocumento chequeo de unicidad de documento, opcionalmente excluyendo un id.
func (r *ProveedorRepo) ExistsByDocumento(ctx context.Context, numeroDocumento string, excludeID *int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM proveedor WHERE numero_documento = $1 AND ($2::bigint IS NULL OR id <> $2))`
	var exists bool
	if err := r.q.QueryRow(ctx, query, numeroDocumento, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists proveedor por documento: %w", err)
	}
	return exists, nil
}

// ExistsByEmail chequeo de unicidad de email, opcionalmente excluyendo un id.
func (r *ProveedorRepo) ExistsByEmail(ctx context.Context, email string, excludeID *int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM proveedor WHERE email = $1 AND ($2::bigint IS NULL OR id <> $2))`
	var exists bool
	if err := r.q.QueryRow(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists proveedor por email: %w", err)
	}
	return exists, nil
}

func (r *ProveedorRepo) scanProveedor(ctx context.Context, query string, args ...any) (*entity.Proveedor, error) {
	var p entity.Proveedor
	var tipoDoc string
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &tipoDoc, &p.NumeroDocumento, &p.RazonSocial, &p.Nombre, &p.Email,
		&p.Telefono, &p.Direccion, &p.Estado, &p.IDExternoDBData,
		&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	p.TipoDocumento = entity.TipoDocumento(tipoDoc)
	return &p, nil
}
