package dto

import (
	"time"

	"github.com/multisoat/certificados-api/internal/domain/entity"
)

// APIResponse envelope uniforme de todas las respuestas HTTP.
type APIResponse struct {
	Success    bool        `json:"success"`
	Status     int         `json:"status"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorBody detalle de error en el envelope.
type ErrorBody struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Pagination metadatos de página en listados.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// PageQuery parámetros de paginación de listados.
type PageQuery struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize aplica defaults (1/10) y tope de límite (100).
func (p *PageQuery) Normalize() {
	if p.Page < 1 {
		p.Page = entity.PaginaDefault
	}
	if p.Limit <= 0 {
		p.Limit = entity.LimiteDefault
	}
	if p.Limit > entity.LimiteMaximo {
		p.Limit = entity.LimiteMaximo
	}
}

// Offset devuelve el desplazamiento SQL para la página.
func (p PageQuery) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NewPagination construye los metadatos de página a partir del total.
func NewPagination(p PageQuery, total int) *Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return &Pagination{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: totalPages}
}

// AuditContext identidad del actor autenticado, origen de los campos de auditoría.
type AuditContext struct {
	UserID string // UUID del sujeto en el proveedor de identidad
	Email  string
	Rol    string
}

// CamposCreacion devuelve la auditoría para un INSERT.
func (a AuditContext) CamposCreacion(now time.Time) entity.Auditoria {
	var by *string
	if a.UserID != "" {
		id := a.UserID
		by = &id
	}
	return entity.Auditoria{CreatedBy: by, UpdatedBy: by, CreatedAt: now, UpdatedAt: now}
}

// CamposUpdate devuelve la auditoría para un UPDATE.
func (a AuditContext) CamposUpdate(now time.Time) entity.Auditoria {
	var by *string
	if a.UserID != "" {
		id := a.UserID
		by = &id
	}
	return entity.Auditoria{UpdatedBy: by, UpdatedAt: now}
}
