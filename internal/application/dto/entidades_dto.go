package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Proveedor ─────────────────────────────────────────────────────────────────

// CreateProveedorRequest alta directa de proveedor (CRUD, no pasa por el flujo de registro).
type CreateProveedorRequest struct {
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	RazonSocial     string `json:"razon_social"`
	Nombre          string `json:"nombre"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
	Direccion       string `json:"direccion"`
}

// UpdateProveedorRequest actualización parcial: solo los campos presentes se tocan.
type UpdateProveedorRequest struct {
	NumeroDocumento *string `json:"numero_documento,omitempty"`
	RazonSocial     *string `json:"razon_social,omitempty"`
	Nombre          *string `json:"nombre,omitempty"`
	Email           *string `json:"email,omitempty"`
	Telefono        *string `json:"telefono,omitempty"`
	Direccion       *string `json:"direccion,omitempty"`
	Estado          *string `json:"estado,omitempty"`
}

// ProveedorResponse fila de proveedor en respuestas.
type ProveedorResponse struct {
	ID              int64     `json:"id"`
	TipoDocumento   string    `json:"tipo_documento"`
	NumeroDocumento string    `json:"numero_documento"`
	RazonSocial     *string   `json:"razon_social"`
	Nombre          *string   `json:"nombre"`
	Email           string    `json:"email"`
	Telefono        *string   `json:"telefono"`
	Direccion       *string   `json:"direccion"`
	Estado          string    `json:"estado"`
	IDExternoDBData *int64    `json:"id_externo_db_data"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ── Distribuidor ──────────────────────────────────────────────────────────────

type CreateDistribuidorRequest struct {
	IDProveedor     int64  `json:"id_proveedor"`
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	Nombre          string `json:"nombre"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
	Direccion       string `json:"direccion"`
}

type UpdateDistribuidorRequest struct {
	NumeroDocumento *string `json:"numero_documento,omitempty"`
	Nombre          *string `json:"nombre,omitempty"`
	Email           *string `json:"email,omitempty"`
	Telefono        *string `json:"telefono,omitempty"`
	Direccion       *string `json:"direccion,omitempty"`
	Estado          *string `json:"estado,omitempty"`
}

type DistribuidorResponse struct {
	ID              int64     `json:"id"`
	IDProveedor     int64     `json:"id_proveedor"`
	TipoDocumento   string    `json:"tipo_documento"`
	NumeroDocumento string    `json:"numero_documento"`
	Nombre          *string   `json:"nombre"`
	Email           string    `json:"email"`
	Telefono        *string   `json:"telefono"`
	Direccion       *string   `json:"direccion"`
	Estado          string    `json:"estado"`
	IDExternoDBData *int64    `json:"id_externo_db_data"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ── Punto de venta ────────────────────────────────────────────────────────────

type CreatePuntoVentaRequest struct {
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	Nombre          string `json:"nombre"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
	Direccion       string `json:"direccion"`
}

type UpdatePuntoVentaRequest struct {
	NumeroDocumento *string `json:"numero_documento,omitempty"`
	Nombre          *string `json:"nombre,omitempty"`
	Email           *string `json:"email,omitempty"`
	Telefono        *string `json:"telefono,omitempty"`
	Direccion       *string `json:"direccion,omitempty"`
	Estado          *string `json:"estado,omitempty"`
}

type PuntoVentaResponse struct {
	ID              int64     `json:"id"`
	TipoDocumento   string    `json:"tipo_documento"`
	NumeroDocumento string    `json:"numero_documento"`
	Nombre          *string   `json:"nombre"`
	Email           string    `json:"email"`
	Telefono        *string   `json:"telefono"`
	Direccion       *string   `json:"direccion"`
	Estado          string    `json:"estado"`
	IDExternoDBData *int64    `json:"id_externo_db_data"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ── Afiliación ────────────────────────────────────────────────────────────────

type CreateAfiliacionRequest struct {
	IDPuntoVenta   int64  `json:"id_punto_venta"`
	IDProveedor    int64  `json:"id_proveedor"`
	IDDistribuidor *int64 `json:"id_distribuidor,omitempty"`
}

type UpdateAfiliacionRequest struct {
	Estado string `json:"estado"`
}

type AfiliacionResponse struct {
	ID             int64     `json:"id"`
	IDPuntoVenta   int64     `json:"id_punto_venta"`
	IDProveedor    int64     `json:"id_proveedor"`
	IDDistribuidor *int64    `json:"id_distribuidor"`
	Estado         string    `json:"estado"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ── Certificado ───────────────────────────────────────────────────────────────

type CreateCertificadoRequest struct {
	IDProveedor  int64           `json:"id_proveedor"`
	NumeroSerie  string          `json:"numero_serie"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
}

type UpdateCertificadoRequest struct {
	PrecioCompra *decimal.Decimal `json:"precio_compra,omitempty"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta,omitempty"`
	Estado       *string          `json:"estado,omitempty"`
}

type CertificadoResponse struct {
	ID           int64           `json:"id"`
	IDProveedor  int64           `json:"id_proveedor"`
	NumeroSerie  string          `json:"numero_serie"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	Estado       string          `json:"estado"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ── Auth ──────────────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
