package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/domain"
	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/internal/domain/repository"
)

// AfiliacionUseCase administra los vínculos punto de venta ↔ proveedor.
type AfiliacionUseCase struct {
	repo        repository.AfiliacionRepository
	puntosVenta repository.PuntoVentaRepository
	proveedores repository.ProveedorRepository
	now         func() time.Time
}

// NewAfiliacionUseCase construye el caso de uso.
func NewAfiliacionUseCase(
	repo repository.AfiliacionRepository,
	puntosVenta repository.PuntoVentaRepository,
	proveedores repository.ProveedorRepository,
) *AfiliacionUseCase {
	return &AfiliacionUseCase{repo: repo, puntosVenta: puntosVenta, proveedores: proveedores, now: time.Now}
}

// Create crea una afiliación en PENDIENTE_APROBACION.
// El par (punto de venta, proveedor) admite una sola afiliación viva.
func (uc *AfiliacionUseCase) Create(ctx context.Context, in dto.CreateAfiliacionRequest, audit dto.AuditContext) (*dto.AfiliacionResponse, error) {
	if in.IDPuntoVenta <= 0 || in.IDProveedor <= 0 {
		return nil, fmt.Errorf("%w: id_punto_venta e id_proveedor son requeridos", domain.ErrInvalidInput)
	}

	pv, err := uc.puntosVenta.GetByID(ctx, in.IDPuntoVenta)
	if err != nil {
		return nil, err
	}
	if pv == nil {
		return nil, fmt.Errorf("%w: punto de venta %d no existe", domain.ErrInvalidInput, in.IDPuntoVenta)
	}
	prov, err := uc.proveedores.GetByID(ctx, in.IDProveedor)
	if err != nil {
		return nil, err
	}
	if prov == nil {
		return nil, fmt.Errorf("%w: proveedor %d no existe", domain.ErrInvalidInput, in.IDProveedor)
	}

	if exists, err := uc.repo.Exists(ctx, in.IDPuntoVenta, in.IDProveedor); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.ErrDuplicate
	}

	a := &entity.Afiliacion{
		IDPuntoVenta:   in.IDPuntoVenta,
		IDProveedor:    in.IDProveedor,
		IDDistribuidor: in.IDDistribuidor,
		Estado:         entity.AfiliacionPendienteAprobacion,
		Auditoria:      audit.CamposCreacion(uc.now()),
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return toAfiliacionResponse(a), nil
}

// GetByID obtiene una afiliación. ErrNotFound si no existe.
func (uc *AfiliacionUseCase) GetByID(ctx context.Context, id int64) (*dto.AfiliacionResponse, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toAfiliacionResponse(a), nil
}

// List lista afiliaciones paginadas con filtros por punto de venta, proveedor y estado.
func (uc *AfiliacionUseCase) List(ctx context.Context, f repository.FiltroAfiliacion, page dto.PageQuery) ([]dto.AfiliacionResponse, *dto.Pagination, error) {
	page.Normalize()
	list, total, err := uc.repo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	out := make([]dto.AfiliacionResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAfiliacionResponse(a))
	}
	return out, dto.NewPagination(page, total), nil
}

// UpdateEstado transiciona el estado de la afiliación (aprobar, rechazar, suspender).
func (uc *AfiliacionUseCase) UpdateEstado(ctx context.Context, id int64, in dto.UpdateAfiliacionRequest, audit dto.AuditContext) (*dto.AfiliacionResponse, error) {
	switch in.Estado {
	case entity.AfiliacionActiva, entity.AfiliacionInactiva, entity.AfiliacionRechazada,
		entity.AfiliacionSuspendida, entity.AfiliacionCancelada, entity.AfiliacionPendienteAprobacion:
	default:
		return nil, fmt.Errorf("%w: estado de afiliación desconocido: %s", domain.ErrInvalidInput, in.Estado)
	}

	if err := uc.repo.UpdateEstado(ctx, id, in.Estado, audit.CamposUpdate(uc.now())); err != nil {
		return nil, err
	}
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toAfiliacionResponse(a), nil
}

// Delete baja lógica: la afiliación pasa a CANCELADA.
func (uc *AfiliacionUseCase) Delete(ctx context.Context, id int64, audit dto.AuditContext) error {
	return uc.repo.UpdateEstado(ctx, id, entity.AfiliacionCancelada, audit.CamposUpdate(uc.now()))
}

func toAfiliacionResponse(a *entity.Afiliacion) *dto.AfiliacionResponse {
	return &dto.AfiliacionResponse{
		ID:             a.ID,
		IDPuntoVenta:   a.IDPuntoVenta,
		IDProveedor:    a.IDProveedor,
		IDDistribuidor: a.IDDistribuidor,
		Estado:         a.Estado,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
