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

// ProveedorUseCase CRUD administrativo de proveedores.
// El alta por este camino es directa (entidad ACTIVO desde el inicio); el alta
// con vinculación de usuario pasa por el servicio de registro.
type ProveedorUseCase struct {
	repo repository.ProveedorRepository
	now  func() time.Time
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(repo repository.ProveedorRepository) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo, now: time.Now}
}

// Create da de alta un proveedor validando formato y unicidad.
func (uc *ProveedorUseCase) Create(ctx context.Context, in dto.CreateProveedorRequest, audit dto.AuditContext) (*dto.ProveedorResponse, error) {
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
	if strings.TrimSpace(in.RazonSocial) == "" {
		errs = append(errs, "razón social es requerida")
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

	razon := validation.NormalizeNombre(in.RazonSocial)
	p := &entity.Proveedor{
		TipoDocumento:   tipoDoc,
		NumeroDocumento: in.NumeroDocumento,
		RazonSocial:     &razon,
		Nombre:          nombreOpcional(in.Nombre),
		Email:           in.Email,
		Telefono:        strOpcional(in.Telefono),
		Direccion:       strOpcional(in.Direccion),
		Estado:          entity.EstadoActivo,
		Auditoria:       audit.CamposCreacion(uc.now()),
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProveedorResponse(p), nil
}

// GetByID obtiene un proveedor. ErrNotFound si no existe.
func (uc *ProveedorUseCase) GetByID(ctx context.Context, id int64) (*dto.ProveedorResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProveedorResponse(p), nil
}

// List lista proveedores paginados.
func (uc *ProveedorUseCase) List(ctx context.Context, f repository.FiltroEntidad, page dto.PageQuery) ([]dto.ProveedorResponse, *dto.Pagination, error) {
	page.Normalize()
	list, total, err := uc.repo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProveedorResponse(p))
	}
	return out, dto.NewPagination(page, total), nil
}

// Update aplica una actualización parcial. Solo los campos presentes cambian;
// documento y email se revalidan en formato y unicidad si vienen en el request.
func (uc *ProveedorUseCase) Update(ctx context.Context, id int64, in dto.UpdateProveedorRequest, audit dto.AuditContext) (*dto.ProveedorResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	if in.NumeroDocumento != nil && *in.NumeroDocumento != p.NumeroDocumento {
		num := strings.TrimSpace(*in.NumeroDocumento)
		if !validation.IsValidDocument(p.TipoDocumento, num) {
			return nil, fmt.Errorf("%w: documento %s inválido", domain.ErrInvalidInput, p.TipoDocumento)
		}
		if exists, err := uc.repo.ExistsByDocumento(ctx, num, &id); err != nil {
			return nil, err
		} else if exists {
			return nil, domain.ErrDuplicate
		}
		p.NumeroDocumento = num
	}
	if in.Email != nil {
		email := validation.NormalizeEmail(*in.Email)
		if !validation.IsValidEmail(email) {
			return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
		}
		if email != p.Email {
			if exists, err := uc.repo.ExistsByEmail(ctx, email, &id); err != nil {
				return nil, err
			} else if exists {
				return nil, domain.ErrEmailAlreadyExists
			}
			p.Email = email
		}
	}
	if in.RazonSocial != nil {
		razon := validation.NormalizeNombre(*in.RazonSocial)
		p.RazonSocial = &razon
	}
	if in.Nombre != nil {
		p.Nombre = nombreOpcional(*in.Nombre)
	}
	if in.Telefono != nil {
		if *in.Telefono != "" && !validation.IsValidPhone(*in.Telefono) {
			return nil, fmt.Errorf("%w: teléfono inválido", domain.ErrInvalidInput)
		}
		p.Telefono = strOpcional(*in.Telefono)
	}
	if in.Direccion != nil {
		p.Direccion = strOpcional(*in.Direccion)
	}
	if in.Estado != nil {
		p.Estado = *in.Estado
	}

	aplicarUpdate(&p.Auditoria, audit, uc.now())
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProveedorResponse(p), nil
}

// Delete baja lógica: marca la entidad como CANCELADO, nunca borra la fila.
func (uc *ProveedorUseCase) Delete(ctx context.Context, id int64, audit dto.AuditContext) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	p.Estado = entity.EstadoCancelado
	aplicarUpdate(&p.Auditoria, audit, uc.now())
	return uc.repo.Update(ctx, p)
}

func toProveedorResponse(p *entity.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:              p.ID,
		TipoDocumento:   string(p.TipoDocumento),
		NumeroDocumento: p.NumeroDocumento,
		RazonSocial:     p.RazonSocial,
		Nombre:          p.Nombre,
		Email:           p.Email,
		Telefono:        p.Telefono,
		Direccion:       p.Direccion,
		Estado:          p.Estado,
		IDExternoDBData: p.IDExternoDBData,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
