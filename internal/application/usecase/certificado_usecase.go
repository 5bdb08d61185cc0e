package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/domain"
	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/internal/domain/repository"
)

// CertificadoUseCase administra el inventario de certificados de un proveedor.
type CertificadoUseCase struct {
	repo        repository.CertificadoRepository
	proveedores repository.ProveedorRepository
	now         func() time.Time
}

// NewCertificadoUseCase construye el caso de uso.
func NewCertificadoUseCase(repo repository.CertificadoRepository, proveedores repository.ProveedorRepository) *CertificadoUseCase {
	return &CertificadoUseCase{repo: repo, proveedores: proveedores, now: time.Now}
}

// Create registra un certificado nuevo en estado DISPONIBLE.
// El número de serie es único dentro del proveedor y los precios no pueden ser negativos.
func (uc *CertificadoUseCase) Create(ctx context.Context, in dto.CreateCertificadoRequest, audit dto.AuditContext) (*dto.CertificadoResponse, error) {
	in.NumeroSerie = strings.TrimSpace(in.NumeroSerie)

	var errs []string
	if in.IDProveedor <= 0 {
		errs = append(errs, "id_proveedor es requerido")
	}
	if in.NumeroSerie == "" {
		errs = append(errs, "numero_serie es requerido")
	}
	if in.PrecioCompra.IsNegative() {
		errs = append(errs, "precio_compra no puede ser negativo")
	}
	if in.PrecioVenta.IsNegative() {
		errs = append(errs, "precio_venta no puede ser negativo")
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(errs, "; "))
	}

	prov, err := uc.proveedores.GetByID(ctx, in.IDProveedor)
	if err != nil {
		return nil, err
	}
	if prov == nil {
		return nil, fmt.Errorf("%w: proveedor %d no existe", domain.ErrInvalidInput, in.IDProveedor)
	}

	if exists, err := uc.repo.ExistsBySerie(ctx, in.IDProveedor, in.NumeroSerie, nil); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.ErrDuplicate
	}

	c := &entity.Certificado{
		IDProveedor:  in.IDProveedor,
		NumeroSerie:  in.NumeroSerie,
		PrecioCompra: in.PrecioCompra,
		PrecioVenta:  in.PrecioVenta,
		Estado:       entity.CertificadoDisponible,
		Auditoria:    audit.CamposCreacion(uc.now()),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCertificadoResponse(c), nil
}

// GetByID obtiene un certificado. ErrNotFound si no existe.
func (uc *CertificadoUseCase) GetByID(ctx context.Context, id int64) (*dto.CertificadoResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCertificadoResponse(c), nil
}

// List lista certificados paginados.
func (uc *CertificadoUseCase) List(ctx context.Context, f repository.FiltroCertificado, page dto.PageQuery) ([]dto.CertificadoResponse, *dto.Pagination, error) {
	page.Normalize()
	list, total, err := uc.repo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	out := make([]dto.CertificadoResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCertificadoResponse(c))
	}
	return out, dto.NewPagination(page, total), nil
}

// Update aplica una actualización parcial de precios o estado.
// Un certificado VENDIDO no admite cambios de precio.
func (uc *CertificadoUseCase) Update(ctx context.Context, id int64, in dto.UpdateCertificadoRequest, audit dto.AuditContext) (*dto.CertificadoResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}

	cambiaPrecio := in.PrecioCompra != nil || in.PrecioVenta != nil
	if cambiaPrecio && c.Estado == entity.CertificadoVendido {
		return nil, fmt.Errorf("%w: certificado vendido, precios inmutables", domain.ErrConflict)
	}

	if in.PrecioCompra != nil {
		if in.PrecioCompra.IsNegative() {
			return nil, fmt.Errorf("%w: precio_compra no puede ser negativo", domain.ErrInvalidInput)
		}
		c.PrecioCompra = *in.PrecioCompra
	}
	if in.PrecioVenta != nil {
		if in.PrecioVenta.IsNegative() {
			return nil, fmt.Errorf("%w: precio_venta no puede ser negativo", domain.ErrInvalidInput)
		}
		c.PrecioVenta = *in.PrecioVenta
	}
	if in.Estado != nil {
		switch *in.Estado {
		case entity.CertificadoDisponible, entity.CertificadoAsignadoDist,
			entity.CertificadoAsignadoPV, entity.CertificadoVendido, entity.CertificadoAnulado:
			c.Estado = *in.Estado
		default:
			return nil, fmt.Errorf("%w: estado de certificado desconocido: %s", domain.ErrInvalidInput, *in.Estado)
		}
	}

	aplicarUpdate(&c.Auditoria, audit, uc.now())
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCertificadoResponse(c), nil
}

// Delete anula el certificado (baja lógica a ANULADO).
func (uc *CertificadoUseCase) Delete(ctx context.Context, id int64, audit dto.AuditContext) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if c.Estado == entity.CertificadoVendido {
		return fmt.Errorf("%w: un certificado vendido no se anula", domain.ErrConflict)
	}
	c.Estado = entity.CertificadoAnulado
	aplicarUpdate(&c.Auditoria, audit, uc.now())
	return uc.repo.Update(ctx, c)
}

func toCertificadoResponse(c *entity.Certificado) *dto.CertificadoResponse {
	return &dto.CertificadoResponse{
		ID:           c.ID,
		IDProveedor:  c.IDProveedor,
		NumeroSerie:  c.NumeroSerie,
		PrecioCompra: c.PrecioCompra,
		PrecioVenta:  c.PrecioVenta,
		Estado:       c.Estado,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
