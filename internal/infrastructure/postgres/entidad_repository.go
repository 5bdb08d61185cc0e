package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/multisoat/certificados-api/internal/domain"
	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/internal/domain/repository"
)

var _ repository.EntidadRepository = (*EntidadRepo)(nil)

// EntidadRepo implementación genérica sobre las tablas proveedor, distribuidor
// y punto_venta. El nombre de tabla sale del tipo cerrado entity.TipoEntidad,
// nunca de entrada del caller, así que interpolarlo en el SQL es seguro.
type EntidadRepo struct {
	q Querier
}

// NewEntidadRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntidadRepository(q Querier) *EntidadRepo {
	return &EntidadRepo{q: q}
}

// ExistsByNumeroDocumento chequeo de duplicado acotado a la tabla del tipo.
func (r *EntidadRepo) ExistsByNumeroDocumento(ctx context.Context, tipo entity.TipoEntidad, numeroDocumento string) (bool, error) {
	if !tipo.Valid() {
		return false, domain.ErrInvalidInput
	}
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE numero_documento = $1)`, tipo.Tabla())
	var exists bool
	if err := r.q.QueryRow(ctx, query, numeroDocumento).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists %s por documento: %w", tipo, err)
	}
	return exists, nil
}

// FindByNumeroDocumento busca por número de documento. nil, nil si no hay fila.
func (r *EntidadRepo) FindByNumeroDocumento(ctx context.Context, tipo entity.TipoEntidad, numeroDocumento string) (*entity.EntidadResumen, error) {
	if !tipo.Valid() {
		return nil, domain.ErrInvalidInput
	}
	query := fmt.Sprintf(`SELECT id, %s, email, estado FROM %s WHERE numero_documento = $1`, columnasResumen(tipo), tipo.Tabla())
	return r.scanResumen(ctx, tipo, query, numeroDocumento)
}

// FindByDocumento busca por (tipo_documento, numero_documento). nil, nil si no hay fila.
func (r *EntidadRepo) FindByDocumento(ctx context.Context, tipo entity.TipoEntidad, tipoDoc entity.TipoDocumento, numeroDocumento string) (*entity.EntidadResumen, error) {
	if !tipo.Valid() {
		return nil, domain.ErrInvalidInput
	}
	query := fmt.Sprintf(`SELECT id, %s, email, estado FROM %s WHERE tipo_documento = $1 AND numero_documento = $2`,
		columnasResumen(tipo), tipo.Tabla())
	return r.scanResumen(ctx, tipo, query, string(tipoDoc), numeroDocumento)
}

// GetResumen obtiene nombre y estado por id. nil, nil si no hay fila.
func (r *EntidadRepo) GetResumen(ctx context.Context, tipo entity.TipoEntidad, id int64) (*entity.EntidadResumen, error) {
	if !tipo.Valid() {
		return nil, domain.ErrInvalidInput
	}
	query := fmt.Sprintf(`SELECT id, %s, email, estado FROM %s WHERE id = $1`, columnasResumen(tipo), tipo.Tabla())
	return r.scanResumen(ctx, tipo, query, id)
}

// Create inserta en la tabla del tipo. Las columnas específicas (razon_social,
// id_proveedor) solo se incluyen donde existen.
func (r *EntidadRepo) Create(ctx context.Context, reg *entity.RegistroEntidad) (int64, error) {
	if !reg.Tipo.Valid() {
		return 0, domain.ErrInvalidInput
	}

	cols := []string{"tipo_documento", "numero_documento", "nombre", "email", "telefono", "direccion", "estado", "id_externo_db_data", "created_by", "updated_by", "created_at", "updated_at"}
	args := []any{string(reg.TipoDocumento), reg.NumeroDocumento, reg.Nombre, reg.Email, reg.Telefono, reg.Direccion, reg.Estado, reg.IDExternoDBData, reg.CreatedBy, reg.UpdatedBy, reg.CreatedAt, reg.UpdatedAt}

	switch reg.Tipo {
	case entity.EntidadProveedor:
		cols = append(cols, "razon_social")
		args = append(args, reg.RazonSocial)
	case entity.EntidadDistribuidor:
		cols = append(cols, "id_proveedor")
		args = append(args, reg.IDProveedor)
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING id`,
		reg.Tipo.Tabla(), strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	var id int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert %s: %w", reg.Tipo, err)
	}
	return id, nil
}

// UpdateEstado cambia el estado estampando auditoría de update.
func (r *EntidadRepo) UpdateEstado(ctx context.Context, tipo entity.TipoEntidad, id int64, estado string, audit entity.Auditoria) error {
	if !tipo.Valid() {
		return domain.ErrInvalidInput
	}
	query := fmt.Sprintf(`UPDATE %s SET estado = $2, updated_by = $3, updated_at = $4 WHERE id = $1`, tipo.Tabla())
	tag, err := r.q.Exec(ctx, query, id, estado, audit.UpdatedBy, audit.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update estado %s: %w", tipo, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EntidadRepo) scanResumen(ctx context.Context, tipo entity.TipoEntidad, query string, args ...any) (*entity.EntidadResumen, error) {
	res := entity.EntidadResumen{Tipo: tipo}
	var err error
	if tipo == entity.EntidadProveedor {
		err = r.q.QueryRow(ctx, query, args...).Scan(&res.ID, &res.Nombre, &res.RazonSocial, &res.Email, &res.Estado)
	} else {
		err = r.q.QueryRow(ctx, query, args...).Scan(&res.ID, &res.Nombre, &res.Email, &res.Estado)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", tipo, err)
	}
	return &res, nil
}

// columnasResumen: solo proveedor tiene razon_social.
func columnasResumen(tipo entity.TipoEntidad) string {
	if tipo == entity.EntidadProveedor {
		return "nombre, razon_social"
	}
	return "nombre"
}
