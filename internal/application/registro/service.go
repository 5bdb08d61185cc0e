package registro

import (
	"context"
	"fmt"
	"time"

	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/domain"
	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/internal/domain/repository"
	"github.com/multisoat/certificados-api/internal/domain/validation"
	"github.com/multisoat/certificados-api/pkg/logger"
)

// Service orquesta el registro de entidades (proveedor, distribuidor, punto de
// venta): valida, resuelve la referencia externa, descarta duplicados, crea la
// entidad y la concilia con una cuenta existente o con una invitación.
//
// Los errores de validación y los duplicados se devuelven como resultado
// estructurado antes de escribir nada; los errores de infraestructura se
// capturan en el borde y se convierten en success:false. Ninguna excepción
// cruza la API pública.
type Service struct {
	tx           TxRunner
	entidades    repository.EntidadRepository
	afiliaciones repository.AfiliacionRepository
	verificador  Verificador
	externo      RegistroExterno
	invitador    Invitador
	log          *logger.Logger
	now          func() time.Time
}

// New construye el servicio de registro.
func New(
	tx TxRunner,
	entidades repository.EntidadRepository,
	afiliaciones repository.AfiliacionRepository,
	verificador Verificador,
	externo RegistroExterno,
	invitador Invitador,
	log *logger.Logger,
) *Service {
	return &Service{
		tx:           tx,
		entidades:    entidades,
		afiliaciones: afiliaciones,
		verificador:  verificador,
		externo:      externo,
		invitador:    invitador,
		log:          log,
		now:          time.Now,
	}
}

// RegisterEntity registro universal de entidades con invitación.
func (s *Service) RegisterEntity(ctx context.Context, tipo entity.TipoEntidad, in dto.RegistroEntidadRequest, audit dto.AuditContext) dto.RegistrationResult {
	// 1. Validaciones previas (se acumulan todas antes de responder)
	if errores := validarDatosRegistro(tipo, in); len(errores) > 0 {
		return dto.RegistrationResult{
			Success: false,
			Message: "Datos de registro inválidos",
			Errors:  errores,
		}
	}

	tipoDoc := entity.TipoDocumento(in.TipoDocumento)

	// 2. Referencia externa db_data: siempre resuelve, posiblemente a nil
	idExterno := s.externo.ResolveExternalReference(ctx, tipoDoc, in.NumeroDocumento, in.IDExternoDBData)

	// 3. Duplicado de documento, acotado al tipo de entidad destino
	if dup, err := s.entidades.ExistsByNumeroDocumento(ctx, tipo, in.NumeroDocumento); err != nil {
		s.log.Warn().Err(err).Str("tipo", string(tipo)).Msg("chequeo de duplicado falló, se continúa")
	} else if dup {
		return dto.RegistrationResult{
			Success: false,
			Message: fmt.Sprintf("Ya existe un %s con este número de documento", tipo),
		}
	}

	// 4. Verificar si el email ya tiene cuenta
	acceso := s.verificador.CheckEmailAccess(ctx, in.Email)

	// 5. Crear entidad y vincular usuario en una sola transacción
	now := s.now()
	reg := registroDesdeRequest(tipo, in, idExterno, audit.CamposCreacion(now))

	var entityID, userID int64
	userExists := acceso.HasAccess && acceso.User != nil

	err := s.tx.RunRegistro(ctx, func(
		entidades repository.EntidadRepository,
		usuarios repository.UsuarioRepository,
		roles repository.RolRepository,
		usuarioRoles repository.UsuarioRolRepository,
	) error {
		var err error
		entityID, err = entidades.Create(ctx, reg)
		if err != nil {
			return fmt.Errorf("creando %s: %w", tipo, err)
		}

		if userExists {
			userID = acceso.User.ID
			return s.vincularUsuario(ctx, entidades, roles, usuarioRoles, userID, tipo, entityID, audit, now)
		}

		userID, err = s.crearUsuarioPendiente(ctx, usuarios, in, audit, now)
		if err != nil {
			// No bloquea el registro: la entidad queda en PENDIENTE_USUARIO
			s.log.Error().Err(err).Str("email", in.Email).Msg("creando usuario pendiente")
			userID = 0
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("tipo", string(tipo)).Msg("registro de entidad")
		return dto.RegistrationResult{
			Success: false,
			Message: fmt.Sprintf("Error interno durante el registro de %s", tipo),
			Errors:  []string{err.Error()},
		}
	}

	if userExists {
		return dto.RegistrationResult{
			Success:       true,
			EntityCreated: true,
			EntityID:      &entityID,
			UserExists:    true,
			UserID:        &userID,
			Message:       fmt.Sprintf("%s registrado y vinculado con usuario existente", tipo),
		}
	}

	// 6. Invitación fuera de la transacción: su fallo solo se refleja en el resultado
	invitationSent := s.invitador.Send(ctx, in.Email, tipo, entityID)
	if !invitationSent {
		s.log.Warn().Str("email", in.Email).Msg("no se pudo enviar la invitación")
	}

	result := dto.RegistrationResult{
		Success:        true,
		EntityCreated:  true,
		EntityID:       &entityID,
		UserExists:     false,
		InvitationSent: invitationSent,
	}
	if userID != 0 {
		result.UserID = &userID
	}
	estadoInvitacion := "Invitación enviada"
	if !invitationSent {
		estadoInvitacion = "Error enviando invitación"
	}
	result.Message = fmt.Sprintf("%s registrado. %s a %s", tipo, estadoInvitacion, in.Email)
	return result
}

// RegisterPuntoVentaWithMultipleProviders caso especial: un punto de venta
// afiliado a varios proveedores. Si el punto de venta ya existe solo se crean
// las afiliaciones faltantes; si no, corre el registro normal y luego abre el
// abanico de afiliaciones.
func (s *Service) RegisterPuntoVentaWithMultipleProviders(ctx context.Context, in dto.RegistroPVMultipleRequest, audit dto.AuditContext) dto.RegistrationResult {
	existente := s.buscarPuntoVenta(ctx, in.NumeroDocumento)

	if existente != nil {
		creadas := s.crearAfiliaciones(ctx, existente.ID, in.IDsProveedores, in.IDDistribuidor, audit)
		afiliacionCreada := creadas > 0
		return dto.RegistrationResult{
			Success:            true,
			EntityCreated:      false,
			EntityID:           &existente.ID,
			UserExists:         true,
			AffiliationCreated: &afiliacionCreada,
			Message:            fmt.Sprintf("Punto de venta existente. %d nueva(s) afiliación(es) creada(s).", creadas),
		}
	}

	result := s.RegisterEntity(ctx, entity.EntidadPuntoVenta, in.RegistroEntidadRequest, audit)
	if !result.Success || result.EntityID == nil {
		return result
	}

	creadas := s.crearAfiliaciones(ctx, *result.EntityID, in.IDsProveedores, in.IDDistribuidor, audit)
	afiliacionCreada := creadas > 0
	result.AffiliationCreated = &afiliacionCreada
	result.Message = fmt.Sprintf("%s %d afiliación(es) creada(s).", result.Message, creadas)
	return result
}

// vincularUsuario asigna el rol por defecto del tipo de entidad y activa la
// entidad. Que falte el rol en el catálogo es un error de configuración fatal.
func (s *Service) vincularUsuario(
	ctx context.Context,
	entidades repository.EntidadRepository,
	roles repository.RolRepository,
	usuarioRoles repository.UsuarioRolRepository,
	idUsuario int64,
	tipo entity.TipoEntidad,
	idEntidad int64,
	audit dto.AuditContext,
	now time.Time,
) error {
	codigo := tipo.RolDefault()
	rol, err := roles.GetByCodigo(ctx, codigo)
	if err != nil {
		return fmt.Errorf("obteniendo rol %s: %w", codigo, err)
	}
	if rol == nil {
		return fmt.Errorf("%w: %s", domain.ErrRolNotFound, codigo)
	}

	ur := &entity.UsuarioRol{
		IDUsuario:   idUsuario,
		IDRol:       rol.ID,
		TipoEntidad: tipo,
		IDEntidad:   idEntidad,
		Activo:      true,
		Auditoria:   audit.CamposCreacion(now),
	}
	if err := usuarioRoles.Create(ctx, ur); err != nil {
		return fmt.Errorf("asignando rol: %w", err)
	}

	if err := entidades.UpdateEstado(ctx, tipo, idEntidad, entity.EstadoActivo, audit.CamposUpdate(now)); err != nil {
		return fmt.Errorf("activando %s: %w", tipo, err)
	}
	return nil
}

// crearUsuarioPendiente inserta el placeholder de cuenta. El repositorio es
// idempotente por email, así que una carrera con otro registro converge al
// mismo usuario en vez de duplicar filas.
func (s *Service) crearUsuarioPendiente(
	ctx context.Context,
	usuarios repository.UsuarioRepository,
	in dto.RegistroEntidadRequest,
	audit dto.AuditContext,
	now time.Time,
) (int64, error) {
	tipoDoc := entity.TipoDocumento(in.TipoDocumento)
	u := &entity.Usuario{
		Email:           validation.NormalizeEmail(in.Email),
		Nombre:          opcional(validation.NormalizeNombre(in.Nombre)),
		TipoDocumento:   &tipoDoc,
		NumeroDocumento: opcional(in.NumeroDocumento),
		Telefono:        opcional(in.Telefono),
		Estado:          entity.UsuarioPendiente,
		Auditoria:       audit.CamposCreacion(now),
	}
	return usuarios.CreatePendiente(ctx, u)
}

// crearAfiliaciones crea una afiliación por proveedor, saltando los pares que
// ya existen. Cada intento es individual: un fallo no corta el resto.
func (s *Service) crearAfiliaciones(ctx context.Context, idPuntoVenta int64, idsProveedores []int64, idDistribuidor *int64, audit dto.AuditContext) int {
	creadas := 0
	for _, idProveedor := range idsProveedores {
		if s.crearAfiliacion(ctx, idPuntoVenta, idProveedor, idDistribuidor, audit) {
			creadas++
		}
	}
	return creadas
}

func (s *Service) crearAfiliacion(ctx context.Context, idPuntoVenta, idProveedor int64, idDistribuidor *int64, audit dto.AuditContext) bool {
	existe, err := s.afiliaciones.Exists(ctx, idPuntoVenta, idProveedor)
	if err != nil {
		s.log.Error().Err(err).Int64("punto_venta", idPuntoVenta).Int64("proveedor", idProveedor).Msg("verificando afiliación")
		return false
	}
	if existe {
		return false
	}

	a := &entity.Afiliacion{
		IDPuntoVenta:   idPuntoVenta,
		IDProveedor:    idProveedor,
		IDDistribuidor: idDistribuidor,
		Estado:         entity.AfiliacionPendienteAprobacion,
		Auditoria:      audit.CamposCreacion(s.now()),
	}
	if err := s.afiliaciones.Create(ctx, a); err != nil {
		s.log.Error().Err(err).Int64("punto_venta", idPuntoVenta).Int64("proveedor", idProveedor).Msg("creando afiliación")
		return false
	}
	return true
}

func (s *Service) buscarPuntoVenta(ctx context.Context, numeroDocumento string) *entity.EntidadResumen {
	resumen, err := s.entidades.FindByNumeroDocumento(ctx, entity.EntidadPuntoVenta, numeroDocumento)
	if err != nil {
		s.log.Warn().Err(err).Msg("buscando punto de venta existente")
		return nil
	}
	return resumen
}

// validarDatosRegistro acumula todos los fallos de validación del payload.
func validarDatosRegistro(tipo entity.TipoEntidad, in dto.RegistroEntidadRequest) []string {
	var errores []string

	if !validation.IsValidEmail(in.Email) {
		errores = append(errores, "Email inválido")
	}
	if in.TipoDocumento == "" || in.NumeroDocumento == "" {
		errores = append(errores, "Documento inválido")
	}

	switch tipo {
	case entity.EntidadProveedor:
		if in.RazonSocial == "" && in.Nombre == "" {
			errores = append(errores, "Proveedor debe tener razón social o nombre")
		}
	case entity.EntidadDistribuidor:
		if in.IDProveedor == nil {
			errores = append(errores, "Distribuidor debe estar asociado a un proveedor")
		}
		if in.Nombre == "" {
			errores = append(errores, "Distribuidor debe tener nombre")
		}
	case entity.EntidadPuntoVenta:
		if in.Nombre == "" {
			errores = append(errores, "Punto de venta debe tener nombre")
		}
	default:
		errores = append(errores, fmt.Sprintf("Tipo de entidad desconocido: %s", tipo))
	}

	return errores
}

func registroDesdeRequest(tipo entity.TipoEntidad, in dto.RegistroEntidadRequest, idExterno *int64, audit entity.Auditoria) *entity.RegistroEntidad {
	reg := &entity.RegistroEntidad{
		Tipo:            tipo,
		TipoDocumento:   entity.TipoDocumento(in.TipoDocumento),
		NumeroDocumento: in.NumeroDocumento,
		Nombre:          opcional(validation.NormalizeNombre(in.Nombre)),
		Email:           validation.NormalizeEmail(in.Email),
		Telefono:        opcional(in.Telefono),
		Direccion:       opcional(in.Direccion),
		Estado:          entity.EstadoPendienteUsuario,
		IDExternoDBData: idExterno,
		Auditoria:       audit,
	}
	switch tipo {
	case entity.EntidadProveedor:
		reg.RazonSocial = opcional(validation.NormalizeNombre(in.RazonSocial))
	case entity.EntidadDistribuidor:
		reg.IDProveedor = in.IDProveedor
	}
	return reg
}

func opcional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
