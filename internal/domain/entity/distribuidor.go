package entity

// Distribuidor canal intermedio entre un proveedor y sus puntos de venta.
type Distribuidor struct {
	ID              int64
	IDProveedor     int64 // proveedor dueño del canal
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
