package verificacion

import (
	"context"
	"fmt"

	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/internal/domain/repository"
	"github.com/multisoat/certificados-api/internal/domain/validation"
	"github.com/multisoat/certificados-api/pkg/logger"
)

// Service verifica qué acceso tiene un email o documento en el sistema.
// Todas las consultas son best-effort: un error de infraestructura degrada a
// "sin acceso / no encontrado" en lugar de propagarse al caller; solo los
// fallos de formato cortan con un mensaje que nombra la regla violada.
type Service struct {
	usuarios     repository.UsuarioRepository
	usuarioRoles repository.UsuarioRolRepository
	entidades    repository.EntidadRepository
	log          *logger.Logger
}

// New construye el servicio de verificación.
func New(
	usuarios repository.UsuarioRepository,
	usuarioRoles repository.UsuarioRolRepository,
	entidades repository.EntidadRepository,
	log *logger.Logger,
) *Service {
	return &Service{usuarios: usuarios, usuarioRoles: usuarioRoles, entidades: entidades, log: log}
}

// CheckEmailAccess indica si un email ya tiene cuenta y a qué entidades accede.
func (s *Service) CheckEmailAccess(ctx context.Context, email string) dto.AccessInfo {
	if !validation.IsValidEmail(email) {
		return dto.AccessInfo{HasAccess: false, Entities: []dto.EntityAccess{}, Message: "Email inválido"}
	}

	usuario, err := s.usuarios.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		s.log.Error().Err(err).Msg("verificación de email")
		return dto.AccessInfo{HasAccess: false, Entities: []dto.EntityAccess{}, Message: "Error interno del sistema"}
	}
	if usuario == nil {
		return dto.AccessInfo{HasAccess: false, Entities: []dto.EntityAccess{}, Message: "Email no registrado en el sistema"}
	}

	entities := s.getUserEntities(ctx, usuario.ID)
	return dto.AccessInfo{
		HasAccess: true,
		User:      toUserInfo(usuario),
		Entities:  entities,
		Message:   fmt.Sprintf("Usuario encontrado con %d entidad(es) asociada(s)", len(entities)),
	}
}

// CheckDocumentAccess indica si un documento ya tiene cuenta. Si no hay cuenta,
// además sondea las tres tablas de entidad: un documento puede existir como
// entidad sin usuario vinculado y eso se reporta distinto de "no registrado".
func (s *Service) CheckDocumentAccess(ctx context.Context, tipo entity.TipoDocumento, numero string) dto.AccessInfo {
	if !validation.IsValidDocument(tipo, numero) {
		return dto.AccessInfo{HasAccess: false, Entities: []dto.EntityAccess{}, Message: "Documento inválido"}
	}

	usuario, err := s.usuarios.GetByDocumento(ctx, tipo, numero)
	if err != nil {
		s.log.Error().Err(err).Msg("verificación de documento")
		return dto.AccessInfo{HasAccess: false, Entities: []dto.EntityAccess{}, Message: "Error interno del sistema"}
	}
	if usuario == nil {
		if tipoEntidad, found := s.documentoEnEntidades(ctx, tipo, numero); found {
			return dto.AccessInfo{
				HasAccess: false,
				Entities:  []dto.EntityAccess{},
				Message:   fmt.Sprintf("Documento registrado en %s pero sin usuario asignado", tipoEntidad),
			}
		}
		return dto.AccessInfo{HasAccess: false, Entities: []dto.EntityAccess{}, Message: "Documento no registrado en el sistema"}
	}

	entities := s.getUserEntities(ctx, usuario.ID)
	return dto.AccessInfo{
		HasAccess: true,
		User:      toUserInfo(usuario),
		Entities:  entities,
		Message:   fmt.Sprintf("Documento encontrado con %d entidad(es) asociada(s)", len(entities)),
	}
}

// CheckUserEntityAccess indica si el usuario tiene una asignación de rol activa
// exactamente sobre (tipo, entidad).
func (s *Service) CheckUserEntityAccess(ctx context.Context, idUsuario int64, tipo entity.TipoEntidad, idEntidad int64) bool {
	ok, err := s.usuarioRoles.ExistsActivo(ctx, idUsuario, tipo, idEntidad)
	if err != nil {
		s.log.Error().Err(err).Int64("usuario", idUsuario).Msg("verificación de acceso a entidad")
		return false
	}
	return ok
}

// IsEmailAvailable indica si el email está libre para un nuevo registro.
// Ante error de consulta se asume no disponible.
func (s *Service) IsEmailAvailable(ctx context.Context, email string, excludeID *int64) bool {
	exists, err := s.usuarios.ExistsByEmail(ctx, validation.NormalizeEmail(email), excludeID)
	if err != nil {
		return false
	}
	return !exists
}

// IsDocumentAvailable indica si el documento está libre para un nuevo registro.
func (s *Service) IsDocumentAvailable(ctx context.Context, tipo entity.TipoDocumento, numero string, excludeID *int64) bool {
	exists, err := s.usuarios.ExistsByDocumento(ctx, tipo, numero, excludeID)
	if err != nil {
		return false
	}
	return !exists
}

// getUserEntities agrupa las asignaciones activas por (tipo, entidad), acumula
// los códigos de rol y resuelve nombre/estado de cada entidad bajo demanda.
func (s *Service) getUserEntities(ctx context.Context, idUsuario int64) []dto.EntityAccess {
	asignaciones, err := s.usuarioRoles.ListActivosByUsuario(ctx, idUsuario)
	if err != nil {
		s.log.Error().Err(err).Int64("usuario", idUsuario).Msg("entidades del usuario")
		return []dto.EntityAccess{}
	}

	entities := make([]dto.EntityAccess, 0, len(asignaciones))
	for _, a := range asignaciones {
		idx := -1
		for i := range entities {
			if entities[i].EntityType == string(a.TipoEntidad) && entities[i].EntityID == a.IDEntidad {
				idx = i
				break
			}
		}
		if idx == -1 {
			acceso := dto.EntityAccess{
				EntityType: string(a.TipoEntidad),
				EntityID:   a.IDEntidad,
				Roles:      []string{},
				Estado:     "DESCONOCIDO",
			}
			if resumen, err := s.entidades.GetResumen(ctx, a.TipoEntidad, a.IDEntidad); err == nil && resumen != nil {
				acceso.EntityName = resumen.DisplayName()
				acceso.Estado = resumen.Estado
			}
			entities = append(entities, acceso)
			idx = len(entities) - 1
		}
		if a.RolCodigo != "" {
			entities[idx].Roles = append(entities[idx].Roles, a.RolCodigo)
		}
	}
	return entities
}

// documentoEnEntidades sondea los tres tipos de entidad buscando el documento.
func (s *Service) documentoEnEntidades(ctx context.Context, tipo entity.TipoDocumento, numero string) (entity.TipoEntidad, bool) {
	for _, t := range entity.TiposEntidad {
		resumen, err := s.entidades.FindByDocumento(ctx, t, tipo, numero)
		if err != nil {
			continue
		}
		if resumen != nil {
			return t, true
		}
	}
	return "", false
}

func toUserInfo(u *entity.Usuario) *dto.UserInfo {
	info := &dto.UserInfo{
		ID:         u.ID,
		IDSupabase: u.IDSupabase,
		Email:      u.Email,
		Nombre:     u.Nombre,
		Telefono:   u.Telefono,
		Estado:     u.Estado,
	}
	if u.TipoDocumento != nil {
		td := string(*u.TipoDocumento)
		info.TipoDocumento = &td
	}
	info.NumeroDocumento = u.NumeroDocumento
	return info
}
