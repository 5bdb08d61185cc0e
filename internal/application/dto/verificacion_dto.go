package dto

// UserInfo datos públicos de una cuenta encontrada en una verificación.
type UserInfo struct {
	ID              int64   `json:"id"`
	IDSupabase      *string `json:"id_supabase"`
	Email           string  `json:"email"`
	Nombre          *string `json:"nombre,omitempty"`
	TipoDocumento   *string `json:"tipo_documento,omitempty"`
	NumeroDocumento *string `json:"numero_documento,omitempty"`
	Telefono        *string `json:"telefono,omitempty"`
	Estado          string  `json:"estado"`
}

// EntityAccess acceso de una cuenta a una entidad concreta, con los roles agrupados.
type EntityAccess struct {
	EntityType string   `json:"entityType"`
	EntityID   int64    `json:"entityId"`
	EntityName string   `json:"entityName,omitempty"`
	Roles      []string `json:"roles"`
	Estado     string   `json:"estado"`
}

// AccessInfo resultado de una verificación por email o documento.
type AccessInfo struct {
	HasAccess bool           `json:"hasAccess"`
	User      *UserInfo      `json:"user,omitempty"`
	Entities  []EntityAccess `json:"entities"`
	Message   string         `json:"message"`
}
