package repository

import (
	"context"

	"github.com/multisoat/certificados-api/internal/domain/entity"
)

// FiltroEntidad filtros comunes de los listados de entidades.
type FiltroEntidad struct {
	Search        string // sobre nombre / razón social / número de documento
	Estado        string
	TipoDocumento string
	IDProveedor   *int64 // solo aplica a distribuidor
}

// ProveedorRepository puerto CRUD de proveedores.
type ProveedorRepository interface {
	Create(ctx context.Context, p *entity.Proveedor) error
	GetByID(ctx context.Context, id int64) (*entity.Proveedor, error)
	List(ctx context.Context, f FiltroEntidad, limit, offset int) ([]*entity.Proveedor, int, error)
	Update(ctx context.Context, p *entity.Proveedor) error
	ExistsByDocumento(ctx context.Context, numeroDocumento string, excludeID *int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *int64) (bool, error)
}

// DistribuidorRepository puerto CRUD de distribuidores.
type DistribuidorRepository interface {
	Create(ctx context.Context, d *entity.Distribuidor) error
	GetByID(ctx context.Context, id int64) (*entity.Distribuidor, error)
	List(ctx context.Context, f FiltroEntidad, limit, offset int) ([]*entity.Distribuidor, int, error)
	Update(ctx context.Context, d *entity.Distribuidor) error
	ExistsByDocumento(ctx context.Context, numeroDocumento string, excludeID *int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *int64) (bool, error)
}

// PuntoVentaRepository puerto CRUD de puntos de venta.
type PuntoVentaRepository interface {
	Create(ctx context.Context, pv *entity.PuntoVenta) error
	GetByID(ctx context.Context, id int64) (*entity.PuntoVenta, error)
	List(ctx context.Context, f FiltroEntidad, limit, offset int) ([]*entity.PuntoVenta, int, error)
	Update(ctx context.Context, pv *entity.PuntoVenta) error
	ExistsByDocumento(ctx context.Context, numeroDocumento string, excludeID *int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *int64) (bool, error)
}

// FiltroCertificado filtros del listado de certificados.
type FiltroCertificado struct {
	IDProveedor *int64
	Estado      string
	Search      string // sobre número de serie
}

// CertificadoRepository puerto CRUD de certificados.
type CertificadoRepository interface {
	Create(ctx context.Context, c *entity.Certificado) error
	GetByID(ctx context.Context, id int64) (*entity.Certificado, error)
	List(ctx context.Context, f FiltroCertificado, limit, offset int) ([]*entity.Certificado, int, error)
	Update(ctx context.Context, c *entity.Certificado) error
	ExistsBySerie(ctx context.Context, idProveedor int64, numeroSerie string, excludeID *int64) (bool, error)
}
