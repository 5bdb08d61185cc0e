package entity

import "github.com/shopspring/decimal"

// Certificado póliza SOAT individual emitida por un proveedor.
// Los precios usan decimal para evitar redondeo binario en montos en soles.
type Certificado struct {
	ID           int64
	IDProveedor  int64
	NumeroSerie  string // único por proveedor
	PrecioCompra decimal.Decimal
	PrecioVenta  decimal.Decimal
	Estado       string
	Auditoria
}
