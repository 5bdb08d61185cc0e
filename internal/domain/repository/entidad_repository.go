package repository

import (
	"context"

	"github.com/multisoat/certificados-api/internal/domain/entity"
)

// EntidadRepository puerto genérico sobre las tres tablas de entidad
// (proveedor, distribuidor, punto_venta). Un solo camino de código para los
// tres tipos; el tipo cerrado entity.TipoEntidad decide la tabla.
type EntidadRepository interface {
	// ExistsByNumeroDocumento indica si ya hay una fila del tipo con ese número
	// de documento. La unicidad es por tipo de entidad, no global.
	ExistsByNumeroDocumento(ctx context.Context, tipo entity.TipoEntidad, numeroDocumento string) (bool, error)

	// FindByNumeroDocumento busca la entidad del tipo por número de documento.
	// Devuelve nil, nil si no existe.
	FindByNumeroDocumento(ctx context.Context, tipo entity.TipoEntidad, numeroDocumento string) (*entity.EntidadResumen, error)

	// FindByDocumento busca por (tipo_documento, numero_documento) en la tabla
	// del tipo dado. Devuelve nil, nil si no existe.
	FindByDocumento(ctx context.Context, tipo entity.TipoEntidad, tipoDoc entity.TipoDocumento, numeroDocumento string) (*entity.EntidadResumen, error)

	// GetResumen obtiene nombre/razón social y estado por id. nil, nil si no existe.
	GetResumen(ctx context.Context, tipo entity.TipoEntidad, id int64) (*entity.EntidadResumen, error)

	// Create inserta la fila en la tabla del tipo y devuelve el id generado.
	Create(ctx context.Context, reg *entity.RegistroEntidad) (int64, error)

	// UpdateEstado cambia el estado de la entidad estampando auditoría de update.
	UpdateEstado(ctx context.Context, tipo entity.TipoEntidad, id int64, estado string, audit entity.Auditoria) error
}
