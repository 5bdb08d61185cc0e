package entity

// Proveedor representa una compañía aseguradora emisora de certificados SOAT.
// (tipo_documento, numero_documento) es único dentro de la tabla proveedor.
type Proveedor struct {
	ID              int64
	TipoDocumento   TipoDocumento
	NumeroDocumento string
	RazonSocial     *string
	Nombre          *string
	Email           string
	Telefono        *string
	Direccion       *string
	Estado          string
	IDExternoDBData *int64 // referencia al registro RENIEC/SUNAT en db_data (null en registros manuales)
	Auditoria
}
