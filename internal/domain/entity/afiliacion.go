package entity

// Afiliacion vincula un punto de venta con un proveedor, opcionalmente a través
// de un distribuidor (tabla afiliacion_pv_proveedor). Nace en PENDIENTE_APROBACION
// y un flujo externo la activa.
type Afiliacion struct {
	ID             int64
	IDPuntoVenta   int64
	IDProveedor    int64
	IDDistribuidor *int64
	Estado         string
	Auditoria
}
