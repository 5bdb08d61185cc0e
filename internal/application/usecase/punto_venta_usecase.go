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
	"github.com/multisoat/certificados-api/internal/domain/validation"
)

// PuntoVentaUseCase CRUD administrativo de puntos de venta.
type PuntoVentaUseCase struct {
	repo repository.PuntoVentaRepository
	now  func() time.Time
}

// NewPuntoVentaUseCase construye el caso de uso.
func NewPuntoVentaUseCase(repo repository.PuntoVentaRepository) *PuntoVentaUseCase {
	return &PuntoVentaUseCase{repo: repo, now: time.Now}
}

// Create da de alta un punto de venta validando formato y unicidad.
func (uc *PuntoVentaUseCase) Create(ctx context.Context, in dto.CreatePuntoVentaRequest, audit dto.AuditContext) (*dto.PuntoVentaResponse, error) {
	tipoDoc := entity.TipoDocumento(strings.ToUpper(strings.TrimSpace(in.TipoDocumento)))
	in.NumeroDocumento = strings.TrimSpace(in.NumeroDocumento)
	in.Email = validation.NormalizeEmail(in.Email)

	var errs []string
	if !validation.IsValidDocument(tipoDoc, in.NumeroDocumento) {
		errs = append(errs, fmt.Sprintf("documento %s inválido", tipoDoc))
	}
	if !validation.IsValidEmail(in.Email) {
		errs = append(errs, "email inválido")
	}
	if in.Telefono != "" && !validation.IsValidPhone(in.Telefono) {
		errs = append(errs, "teléfono inválido")
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(errs, "; "))
	}

	if exists, err := uc.repo.ExistsByDocumento(ctx, in.NumeroDocumento, nil); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.ErrDuplicate
	}
	if exists, err := uc.repo.ExistsByEmail(ctx, in.Email, nil); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	pv := &entity.PuntoVenta{
		TipoDocumento:   tipoDoc,
		NumeroDocumento: in.NumeroDocumento,
		Nombre:          nombreOpcional(in.Nombre),
		Email:           in.Email,
		Telefono:        strOpcional(in.Telefono),
		Direccion:       strOpcional(in.Direccion),
		Estado:          entity.EstadoActivo,
		Auditoria:       audit.CamposCreacion(uc.now()),
	}
	if err := uc.repo.Create(ctx, pv); err != nil {
		return nil, err
	}
	return toPuntoVentaResponse(pv), nil
}

// GetByID obtiene un punto de venta. ErrNotFound si no existe.
func (uc *PuntoVentaUseCase) GetByID(ctx context.Context, id int64) (*dto.PuntoVentaResponse, error) {
	pv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pv == nil {
		return nil, domain.ErrNotFound
	}
	return toPuntoVentaResponse(pv), nil
}

// List lista puntos de venta paginados.
func (uc *PuntoVentaUseCase) List(ctx context.Context, f repository.FiltroEntidad, page dto.PageQuery) ([]dto.PuntoVentaResponse, *dto.Pagination, error) {
	page.Normalize()
	list, total, err := uc.repo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	out := make([]dto.PuntoVentaResponse, 0, len(list))
	for _, pv := range list {
		out = append(out, *toPuntoVentaResponse(pv))
	}
	return out, dto.NewPagination(page, total), nil
}

// Update aplica una actualización parcial.
func (uc *PuntoVentaUseCase) Update(ctx context.Context, id int64, in dto.UpdatePuntoVentaRequest, audit dto.AuditContext) (*dto.PuntoVentaResponse, error) {
	pv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pv == nil {
		return nil, domain.ErrNotFound
	}

	if in.NumeroDocumento != nil && *in.NumeroDocumento != pv.NumeroDocumento {
		num := strings.TrimSpace(*in.NumeroDocumento)
		if !validation.IsValidDocument(pv.TipoDocumento, num) {
			return nil, fmt.Errorf("%w: documento %s inválido", domain.ErrInvalidInput, pv.TipoDocumento)
		}
		if exists, err := uc.repo.ExistsByDocumento(ctx, num, &id); err != nil {
			return nil, err
		} else if exists {
			return nil, domain.ErrDuplicate
		}
		pv.NumeroDocumento = num
	}
	if in.Email != nil {
		email := validation.NormalizeEmail(*in.Email)
		if !validation.IsValidEmail(email) {
			return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
		}
		if email != pv.Email {
			if exists, err := uc.repo.ExistsByEmail(ctx, email, &id); err != nil {
				return nil, err
			} else if exists {
				return nil, domain.ErrEmailAlreadyExists
			}
			pv.Email = email
		}
	}
	if in.Nombre != nil {
		pv.Nombre = nombreOpcional(*in.Nombre)
	}
	if in.Telefono != nil {
		if *in.Telefono != "" && !validation.IsValidPhone(*in.Telefono) {
			return nil, fmt.Errorf("%w: teléfono inválido", domain.ErrInvalidInput)
		}
		pv.Telefono = strOpcional(*in.Telefono)
	}
	if in.Direccion != nil {
		pv.Direccion = strOpcional(*in.Direccion)
	}
	if in.Estado != nil {
		pv.Estado = *in.Estado
	}

	aplicarUpdate(&pv.Auditoria, audit, uc.now())
	if err := uc.repo.Update(ctx, pv); err != nil {
		return nil, err
	}
	return toPuntoVentaResponse(pv), nil
}

// Delete baja lógica del punto de venta.
func (uc *PuntoVentaUseCase) Delete(ctx context.Context, id int64, audit dto.AuditContext) error {
	pv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pv == nil {
		return domain.ErrNotFound
	}
	pv.Estado = entity.EstadoCancelado
	aplicarUpdate(&pv.Auditoria, audit, uc.now())
	return uc.repo.Update(ctx, pv)
}

func toPuntoVentaResponse(pv *entity.PuntoVenta) *dto.PuntoVentaResponse {
	return &dto.PuntoVentaResponse{
		ID:              pv.ID,
		TipoDocumento:   string(pv.TipoDocumento),
		NumeroDocumento: pv.NumeroDocumento,
		Nombre:          pv.Nombre,
		Email:           pv.Email,
		Telefono:        pv.Telefono,
		Direccion:       pv.Direccion,
		Estado:          pv.Estado,
		IDExternoDBData: pv.IDExternoDBData,
		CreatedAt:       pv.CreatedAt,
		UpdatedAt:       pv.UpdatedAt,
	}
}
