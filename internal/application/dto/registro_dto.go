package dto

// RegistroEntidadRequest payload del registro universal de entidades.
// Los ids organizacionales aplican según el tipo: IDProveedor para
// distribuidor, IDDistribuidor opcional para afiliaciones de punto de venta.
type RegistroEntidadRequest struct {
	Nombre          string `json:"nombre"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
	Direccion       string `json:"direccion"`
	RazonSocial     string `json:"razon_social"`
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	IDProveedor     *int64 `json:"id_proveedor,omitempty"`
	IDDistribuidor  *int64 `json:"id_distribuidor,omitempty"`
	IDExternoDBData *int64 `json:"id_externo_db_data,omitempty"`
}

// RegistroPVMultipleRequest registro de punto de venta con afiliación a varios proveedores.
type RegistroPVMultipleRequest struct {
	RegistroEntidadRequest
	IDsProveedores []int64 `json:"ids_proveedores"`
}

// RegistrationResult resultado compuesto del flujo de registro.
// Los nombres JSON se mantienen en camelCase por compatibilidad con el frontend.
type RegistrationResult struct {
	Success            bool     `json:"success"`
	EntityCreated      bool     `json:"entityCreated"`
	EntityID           *int64   `json:"entityId,omitempty"`
	UserExists         bool     `json:"userExists"`
	UserID             *int64   `json:"userId,omitempty"`
	InvitationSent     bool     `json:"invitationSent"`
	AffiliationCreated *bool    `json:"affiliationCreated,omitempty"`
	Message            string   `json:"message"`
	Errors             []string `json:"errors,omitempty"`
}
