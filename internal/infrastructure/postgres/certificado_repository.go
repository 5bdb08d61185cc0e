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

var _ repository.CertificadoRepository = (*CertificadoRepo)(nil)

// CertificadoRepo implementación CRUD de certificados sobre PostgreSQL.
// Los precios viajan como numeric gracias al codec de pgx-shopspring-decimal
// registrado en el pool.
type CertificadoRepo struct {
	q Querier
}

// NewCertificadoRepository construye el adaptador.
func NewCertificadoRepository(q Querier) *CertificadoRepo {
	return &CertificadoRepo{q: q}
}

const certificadoCols = `id, id_proveedor, numero_serie, precio_compra, precio_venta, estado, created_by, updated_by, created_at, updated_at`

// Create persiste un certificado nuevo.
func (r *CertificadoRepo) Create(ctx context.Context, c *entity.Certificado) error {
	query := `
		INSERT INTO certificado (id_proveedor, numero_serie, precio_compra, precio_venta, estado, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.IDProveedor, c.NumeroSerie, c.PrecioCompra, c.PrecioVenta, c.Estado,
		c.CreatedBy, c.UpdatedBy, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert certificado: %w", err)
	}
	return nil
}

// GetByID obtiene un certificado por id. nil, nil si no hay fila.
func (r *CertificadoRepo) GetByID(ctx context.Context, id int64) (*entity.Certificado, error) {
	query := `SELECT ` + certificadoCols + ` FROM certificado WHERE id = $1`
	var c entity.Certificado
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.IDProveedor, &c.NumeroSerie, &c.PrecioCompra, &c.PrecioVenta,
		&c.Estado, &c.CreatedBy, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get certificado: %w", err)
	}
	return &c, nil
}

// List lista certificados con filtros y paginación, junto al total.
func (r *CertificadoRepo) List(ctx context.Context, f repository.FiltroCertificado, limit, offset int) ([]*entity.Certificado, int, error) {
	where := ` WHERE ($1::bigint IS NULL OR id_proveedor = $1)
		AND ($2 = '' OR estado = $2)
		AND ($3 = '' OR numero_serie ILIKE '%' || $3 || '%')`
	args := []any{f.IDProveedor, f.Estado, f.Search}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM certificado`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count certificados: %w", err)
	}

	query := `SELECT ` + certificadoCols + ` FROM certificado` + where + ` ORDER BY id DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list certificados: %w", err)
	}
	defer rows.Close()

	var list []*entity.Certificado
	for rows.Next() {
		var c entity.Certificado
		if err := rows.Scan(
			&c.ID, &c.IDProveedor, &c.NumeroSerie, &c.PrecioCompra, &c.PrecioVenta,
			&c.Estado, &c.CreatedBy, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan certificado: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

// Update actualiza los campos editables de un certificado.
func (r *CertificadoRepo) Update(ctx context.Context, c *entity.Certificado) error {
	query := `
		UPDATE certificado
		SET numero_serie = $2, precio_compra = $3, precio_venta = $4,
			estado = $5, updated_by = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.NumeroSerie, c.PrecioCompra, c.PrecioVenta,
		c.Estado, c.UpdatedBy, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update certificado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsBySerie chequeo de unicidad de número de serie dentro de un proveedor.
func (r *CertificadoRepo) ExistsBySerie(ctx context.Context, idProveedor int64, numeroSerie string, excludeID *int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM certificado WHERE id_proveedor = $1 AND numero_serie = $2 AND ($3::bigint IS NULL OR id <> $3))`
	var exists bool
	if err := r.q.QueryRow(ctx, query, idProveedor, numeroSerie, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists certificado por serie: %w", err)
	}
	return exists, nil
}
