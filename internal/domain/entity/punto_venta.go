package entity

// PuntoVenta establecimiento que vende certificados al público.
// Se vincula a uno o más proveedores mediante afiliaciones.
type PuntoVenta struct {
	ID              int64
	TipoDocumento   TipoDocumento
	NumeroDocumento string
	Nombre          *string
	Email           string
	Telefono        *string
	Direccion       *string
	Estado          string
	IDExternoDBData *int64
	Auditoria
}
