package entity

import "time"

// Auditoria campos de trazabilidad estampados en cada fila.
// CreatedBy/UpdatedBy llevan el UUID del sujeto autenticado en el proveedor de identidad.
type Auditoria struct {
	CreatedBy *string
	UpdatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
