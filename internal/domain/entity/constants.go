package entity

// TipoDocumento tipos de documento aceptados (catálogo cat_tipos_documento).
type TipoDocumento string

const (
	DocumentoDNI TipoDocumento = "DNI" // persona natural, 8 dígitos
	DocumentoRUC TipoDocumento = "RUC" // persona jurídica, 11 dígitos
	DocumentoCE  TipoDocumento = "CE"  // carné de extranjería, 9-12 alfanumérico
)

// TipoEntidad tipos de entidad registrables del negocio.
// Variante cerrada: la tabla, el rol por defecto y los campos requeridos
// se resuelven por tipo, nunca por strings arbitrarios del caller.
type TipoEntidad string

const (
	EntidadProveedor    TipoEntidad = "proveedor"
	EntidadDistribuidor TipoEntidad = "distribuidor"
	EntidadPuntoVenta   TipoEntidad = "punto_venta"
)

// TiposEntidad lista cerrada en orden de consulta (usada por la búsqueda cross-entidad).
var TiposEntidad = []TipoEntidad{EntidadProveedor, EntidadDistribuidor, EntidadPuntoVenta}

// Valid indica si el tipo pertenece a la variante cerrada.
func (t TipoEntidad) Valid() bool {
	switch t {
	case EntidadProveedor, EntidadDistribuidor, EntidadPuntoVenta:
		return true
	}
	return false
}

// Tabla devuelve el nombre de tabla de la entidad.
func (t TipoEntidad) Tabla() string { return string(t) }

// RolDefault devuelve el código de rol asignado al vincular un usuario
// con una entidad recién registrada.
func (t TipoEntidad) RolDefault() string {
	switch t {
	case EntidadProveedor:
		return RolProveedorAdmin
	case EntidadDistribuidor:
		return RolDistribuidorAdmin
	case EntidadPuntoVenta:
		return RolPuntoVentaAdmin
	}
	return ""
}

// Estados de entidad (catálogo cat_estados_entidad).
const (
	EstadoPendienteUsuario = "PENDIENTE_USUARIO"
	EstadoActivo           = "ACTIVO"
	EstadoInactivo         = "INACTIVO"
	EstadoSuspendido       = "SUSPENDIDO"
	EstadoBloqueado        = "BLOQUEADO"
	EstadoCancelado        = "CANCELADO"
)

// Estados de afiliación (catálogo cat_estados_afiliacion).
const (
	AfiliacionPendienteAprobacion = "PENDIENTE_APROBACION"
	AfiliacionActiva              = "ACTIVA"
	AfiliacionInactiva            = "INACTIVA"
	AfiliacionRechazada           = "RECHAZADA"
	AfiliacionSuspendida          = "SUSPENDIDA"
	AfiliacionCancelada           = "CANCELADA"
)

// Estados de usuario.
const (
	UsuarioActivo    = "ACTIVO"
	UsuarioInactivo  = "INACTIVO"
	UsuarioPendiente = "PENDIENTE_USUARIO"
)

// Estados de certificado (catálogo cat_estados_certificado).
const (
	CertificadoDisponible   = "DISPONIBLE"
	CertificadoAsignadoDist = "ASIGNADO_DIST"
	CertificadoAsignadoPV   = "ASIGNADO_PV"
	CertificadoVendido      = "VENDIDO"
	CertificadoAnulado      = "ANULADO"
)

// Roles del sistema (tabla rol).
const (
	RolSistemaAdmin = "SISTEMA_ADMIN"

	RolProveedorAdmin      = "PROVEEDOR_ADMIN"
	RolProveedorSupervisor = "PROVEEDOR_SUPERVISOR"
	RolProveedorOperador   = "PROVEEDOR_OPERADOR"

	RolDistribuidorAdmin      = "DISTRIBUIDOR_ADMIN"
	RolDistribuidorSupervisor = "DISTRIBUIDOR_SUPERVISOR"
	RolDistribuidorOperador   = "DISTRIBUIDOR_OPERADOR"

	RolPuntoVentaAdmin      = "PUNTO_VENTA_ADMIN"
	RolPuntoVentaSupervisor = "PUNTO_VENTA_SUPERVISOR"
	RolPuntoVentaOperador   = "PUNTO_VENTA_OPERADOR"
)

// Paginación de listados.
const (
	PaginaDefault = 1
	LimiteDefault = 10
	LimiteMaximo  = 100
)
