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

// DistribuidorUseCase CRUD administrativo de distribuidores.
type DistribuidorUseCase struct {
	repo        repository.DistribuidorRepository
	proveedores repository.ProveedorRepository
	now         func() time.Time
}

// NewDistribuidorUseCase construye el caso de uso.
func NewDistribuidorUseCase(repo repository.DistribuidorRepository, proveedores repository.ProveedorRepository) *DistribuidorUseCase {
	return &DistribuidorUseCase{repo: repo, proveedores: proveedores, now: time.Now}
}

// Create da de alta un distribuidor bajo un proveedor existente.
func (uc *DistribuidorUseCase) Create(ctx context.Context, in dto.CreateDistribuidorRequest, audit dto.AuditContext) (*dto.DistribuidorResponse, error) {
	tipoDoc := entity.TipoDocumento(strings.ToUpper(strings.TrimSpace(in.TipoDocumento)))
	in.NumeroDocumento = strings.TrimSpace(in.NumeroDocumento)
	in.Email = validation.NormalizeEmail(in.Email)

	var errs []string
	if in.IDProveedor <= 0 {
		errs = append(errs, "id_proveedor es requerido")
	}
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

	prov, err := uc.proveedores.GetByID(ctx, in.IDProveedor)
	if err != nil {
		return nil, err
	}
	if prov == nil {
		return nil, fmt.Errorf("%w: proveedor %d no existe", domain.ErrInvalidInput, in.IDProveedor)
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

	d := &entity.Distribuidor{
		IDProveedor:     in.IDProveedor,
		TipoDocumento:   tipoDoc,
		NumeroDocumento: in.NumeroDocumento,
		Nombre:          nombreOpcional(in.Nombre),
		Email:           in.Email,
		Telefono:        strOpcional(in.Telefono),
		Direccion:       strOpcional(in.Direccion),
		Estado:          entity.EstadoActivo,
		Auditoria:       audit.CamposCreacion(uc.now()),
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return toDistribuidorResponse(d), nil
}

// GetByID obtiene un distribuidor. ErrNotFound si no existe.
func (uc *DistribuidorUseCase) GetByID(ctx context.Context, id int64) (*dto.DistribuidorResponse, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return toDistribuidorResponse(d), nil
}

// List lista distribuidores paginados, opcionalmente acotados a un proveedor.
func (uc *DistribuidorUseCase) List(ctx context.Context, f repository.FiltroEntidad, page dto.PageQuery) ([]dto.DistribuidorResponse, *dto.Pagination, error) {
	page.Normalize()
	list, total, err := uc.repo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	out := make([]dto.DistribuidorResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDistribuidorResponse(d))
	}
	return out, dto.NewPagination(page, total), nil
}

// Update aplica una actualización parcial.
func (uc *DistribuidorUseCase) Update(ctx context.Context, id int64, in dto.UpdateDistribuidorRequest, audit dto.AuditContext) (*dto.DistribuidorResponse, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}

	if in.NumeroDocumento != nil && *in.NumeroDocumento != d.NumeroDocumento {
		num := strings.TrimSpace(*in.NumeroDocumento)
		if !validation.IsValidDocument(d.TipoDocumento, num) {
			return nil, fmt.Errorf("%w: documento %s inválido", domain.ErrInvalidInput, d.TipoDocumento)
		}
		if exists, err := uc.repo.ExistsByDocumento(ctx, num, &id); err != nil {
			return nil, err
		} else if exists {
			return nil, domain.ErrDuplicate
		}
		d.NumeroDocumento = num
	}
	if in.Email != nil {
		email := validation.NormalizeEmail(*in.Email)
		if !validation.IsValidEmail(email) {
			return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
		}
		if email != d.Email {
			if exists, err := uc.repo.ExistsByEmail(ctx, email, &id); err != nil {
				return nil, err
			} else if exists {
				return nil, domain.ErrEmailAlreadyExists
			}
			d.Email = email
		}
	}
	if in.Nombre != nil {
		d.Nombre = nombreOpcional(*in.Nombre)
	}
	if in.Telefono != nil {
		if *in.Telefono != "" && !validation.IsValidPhone(*in.Telefono) {
			return nil, fmt.Errorf("%w: teléfono inválido", domain.ErrInvalidInput)
		}
		d.Telefono = strOpcional(*in.Telefono)
	}
	if in.Direccion != nil {
		d.Direccion = strOpcional(*in.Direccion)
	}
	if in.Estado != nil {
		d.Estado = *in.Estado
	}

	aplicarUpdate(&d.Auditoria, audit, uc.now())
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDistribuidorResponse(d), nil
}

// Delete baja lógica del distribuidor.
func (uc *DistribuidorUseCase) Delete(ctx context.Context, id int64, audit dto.AuditContext) error {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.ErrNotFound
	}
	d.Estado = entity.EstadoCancelado
	aplicarUpdate(&d.Auditoria, audit, uc.now())
	return uc.repo.Update(ctx, d)
}

func toDistribuidorResponse(d *entity.Distribuidor) *dto.DistribuidorResponse {
	return &dto.DistribuidorResponse{
		ID:              d.ID,
		IDProveedor:     d.IDProveedor,
		TipoDocumento:   string(d.TipoDocumento),
		NumeroDocumento: d.NumeroDocumento,
		Nombre:          d.Nombre,
		Email:           d.Email,
		Telefono:        d.Telefono,
		Direccion:       d.Direccion,
		Estado:          d.Estado,
		IDExternoDBData: d.IDExternoDBData,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
