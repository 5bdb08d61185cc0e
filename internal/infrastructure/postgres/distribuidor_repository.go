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

var _ repository.DistribuidorRepository = (*DistribuidorRepo)(nil)

// DistribuidorRepo implementación CRUD de distribuidores sobre PostgreSQL.
type DistribuidorRepo struct {
	q Querier
}

// NewDistribuidorRepository construye el adaptador.
func NewDistribuidorRepository(q Querier) *DistribuidorRepo {
	return &DistribuidorRepo{q: q}
}

const distribuidorCols = `id, id_proveedor, tipo_documento, numero_documento, nombre, email, telefono, direccion, estado, id_externo_db_data, created_by, updated_by, created_at, updated_at`

// Create persiste un distribuidor nuevo.
func (r *DistribuidorRepo) Create(ctx context.Context, d *entity.Distribuidor) error {
	query := `
		INSERT INTO distribuidor (id_proveedor, tipo_documento, numero_documento, nombre, email, telefono, direccion, estado, id_externo_db_data, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		d.IDProveedor, string(d.TipoDocumento), d.NumeroDocumento, d.Nombre, d.Email,
		d.Telefono, d.Direccion, d.Estado, d.IDExternoDBData,
		d.CreatedBy, d.UpdatedBy, d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert distribuidor: %w", err)
	}
	return nil
}

// GetByID obtiene un distribuidor por id. nil, nil si no hay fila.
func (r *DistribuidorRepo) GetByID(ctx context.Context, id int64) (*entity.Distribuidor, error) {
	query := `SELECT ` + distribuidorCols + ` FROM distribuidor WHERE id = $1`
	return r.scanDistribuidor(ctx, query, id)
}

// List lista distribuidores con filtros y paginación, junto al total.
// FiltroEntidad.IDProveedor acota al canal de un proveedor.
func (r *DistribuidorRepo) List(ctx context.Context, f repository.FiltroEntidad, limit, offset int) ([]*entity.Distribuidor, int, error) {
	where := ` WHERE ($1 = '' OR nombre ILIKE '%' || $1 || '%' OR numero_documento ILIKE '%' || $1 || '%')
		AND ($2 = '' OR estado = $2)
		AND ($3 = '' OR tipo_documento = $3)
		AND ($4::bigint IS NULL OR id_proveedor = $4)`
	args := []any{f.Search, f.Estado, f.TipoDocumento, f.IDProveedor}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM distribuidor`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count distribuidores: %w", err)
	}

	query := `SELECT ` + distribuidorCols + ` FROM distribuidor` + where + ` ORDER BY id DESC LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list distribuidores: %w", err)
	}
	defer rows.Close()

	var list []*entity.Distribuidor
	for rows.Next() {
		var d entity.Distribuidor
		var tipoDoc string
		if err := rows.Scan(
			&d.ID, &d.IDProveedor, &tipoDoc, &d.NumeroDocumento, &d.Nombre, &d.Email,
			&d.Telefono, &d.Direccion, &d.Estado, &d.IDExternoDBData,
			&d.CreatedBy, &d.UpdatedBy, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan distribuidor: %w", err)
		}
		d.TipoDocumento = entity.TipoDocumento(tipoDoc)
		list = append(list, &d)
	}
	return list, total, rows.Err()
}

// Update actualiza los campos editables de un distribuidor.
func (r *DistribuidorRepo) Update(ctx context.Context, d *entity.Distribuidor) error {
	query := `
		UPDATE distribuidor
		SET numero_documento = $2, nombre = $3, email = $4, telefono = $5,
			direccion = $6, estado = $7, updated_by = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		d.ID, d.NumeroDocumento, d.Nombre, d.Email, d.Telefono,
		d.Direccion, d.Estado, d.UpdatedBy, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update distribuidor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsByDocumento chequeo de unicidad de documento, opcionalmente excluyendo un id.
func (r *DistribuidorRepo) ExistsByDocumento(ctx context.Context, numeroDocumento string, excludeID *int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM distribuidor WHERE numero_documento = $1 AND ($2::bigint IS NULL OR id <> $2))`
	var exists bool
	if err := r.q.QueryRow(ctx, query, numeroDocumento, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists distribuidor por documento: %w", err)
	}
	return exists, nil
}

// ExistsByEmail chequeo de unicidad de email, opcionalmente excluyendo un id.
func (r *DistribuidorRepo) ExistsByEmail(ctx context.Context, email string, excludeID *int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM distribuidor WHERE email = $1 AND ($2::bigint IS NULL OR id <> $2))`
	var exists bool
	if err := r.q.QueryRow(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists distribuidor por email: %w", err)
	}
	return exists, nil
}

func (r *DistribuidorRepo) scanDistribuidor(ctx context.Context, query string, args ...any) (*entity.Distribuidor, error) {
	var d entity.Distribuidor
	var tipoDoc string
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&d.ID, &d.IDProveedor, &tipoDoc, &d.NumeroDocumento, &d.Nombre, &d.Email,
		&d.Telefono, &d.Direccion, &d.Estado, &d.IDExternoDBData,
		&d.CreatedBy, &d.UpdatedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get distribuidor: %w", err)
	}
	d.TipoDocumento = entity.TipoDocumento(tipoDoc)
	return &d, nil
}
