package entity

// RegistroEntidad datos de alta de una entidad por el flujo de registro.
// Un solo payload sirve para los tres tipos; los campos específicos
// (RazonSocial, IDProveedor) solo aplican según Tipo.
type RegistroEntidad struct {
	Tipo            TipoEntidad
	TipoDocumento   TipoDocumento
	NumeroDocumento string
	Nombre          *string
	RazonSocial     *string // solo proveedor
	IDProveedor     *int64  // solo distribuidor
	Email           string
	Telefono        *string
	Direccion       *string
	Estado          string
	IDExternoDBData *int64
	Auditoria
}

// EntidadResumen vista mínima de una entidad de cualquier tipo,
// suficiente para verificación de acceso y detección de duplicados.
type EntidadResumen struct {
	ID          int64
	Tipo        TipoEntidad
	Nombre      *string
	RazonSocial *string
	Email       string
	Estado      string
}

// DisplayName devuelve el nombre visible: nombre, o razón social si no hay nombre.
func (e EntidadResumen) DisplayName() string {
	if e.Nombre != nil && *e.Nombre != "" {
		return *e.Nombre
	}
	if e.RazonSocial != nil {
		return *e.RazonSocial
	}
	return ""
}

// RolAsignado fila de usuario_rol resuelta con el código del rol.
type RolAsignado struct {
	TipoEntidad TipoEntidad
	IDEntidad   int64
	RolCodigo   string
}
