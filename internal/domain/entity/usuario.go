package entity

// Usuario cuenta de acceso al sistema. El email es único global.
// IDSupabase es el subject del proveedor de identidad; queda en null mientras
// el usuario sea un registro pendiente creado por una invitación.
type Usuario struct {
	ID              int64
	IDSupabase      *string
	Email           string
	Nombre          *string
	TipoDocumento   *TipoDocumento
	NumeroDocumento *string
	Telefono        *string
	Estado          string
	PasswordHash    *string
	Auditoria
}
