package repository

import (
	"context"

	"github.com/multisoat/certificados-api/internal/domain/entity"
)

// FiltroAfiliacion filtros del listado de afiliaciones.
type FiltroAfiliacion struct {
	IDPuntoVenta *int64
	IDProveedor  *int64
	Estado       string
}

// AfiliacionRepository puerto de persistencia para afiliacion_pv_proveedor.
type AfiliacionRepository interface {
	// Exists indica si ya hay una afiliación para el par (punto de venta, proveedor).
	Exists(ctx context.Context, idPuntoVenta, idProveedor int64) (bool, error)

	Create(ctx context.Context, a *entity.Afiliacion) error
	GetByID(ctx context.Context, id int64) (*entity.Afiliacion, error)
	List(ctx context.Context, f FiltroAfiliacion, limit, offset int) ([]*entity.Afiliacion, int, error)
	UpdateEstado(ctx context.Context, id int64, estado string, audit entity.Auditoria) error
}
