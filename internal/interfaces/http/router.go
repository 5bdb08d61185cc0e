package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/multisoat/certificados-api/internal/application/auth"
	"github.com/multisoat/certificados-api/internal/application/registro"
	"github.com/multisoat/certificados-api/internal/application/usecase"
	"github.com/multisoat/certificados-api/internal/application/verificacion"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegistroSvc     *registro.Service
	VerificacionSvc *verificacion.Service
	AuthUC          *auth.UseCase
	ProveedorUC     *usecase.ProveedorUseCase
	DistribuidorUC  *usecase.DistribuidorUseCase
	PuntoVentaUC    *usecase.PuntoVentaUseCase
	AfiliacionUC    *usecase.AfiliacionUseCase
	CertificadoUC   *usecase.CertificadoUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Verificación (público: el frontend consulta antes de tener sesión)
	verif := api.Group("/verificacion")
	verifHandler := NewVerificacionHandler(deps.VerificacionSvc)
	verif.Get("/email", verifHandler.CheckEmail)
	verif.Get("/documento", verifHandler.CheckDocumento)

	// Registro de entidades (público: es el alta de nuevos actores)
	reg := api.Group("/registro")
	registroHandler := NewRegistroHandler(deps.RegistroSvc)
	reg.Post("/punto-venta-multiple", registroHandler.RegisterPuntoVentaMultiple)
	reg.Post("/:tipo_entidad", registroHandler.RegisterEntity)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores.Post("/", proveedorHandler.Create)
	proveedores.Get("/", proveedorHandler.List)
	proveedores.Get("/:id", proveedorHandler.GetByID)
	proveedores.Put("/:id", proveedorHandler.Update)
	proveedores.Patch("/:id", proveedorHandler.Update)
	proveedores.Delete("/:id", proveedorHandler.Delete)

	distribuidores := protected.Group("/distribuidores")
	distribuidorHandler := NewDistribuidorHandler(deps.DistribuidorUC)
	distribuidores.Post("/", distribuidorHandler.Create)
	distribuidores.Get("/", distribuidorHandler.List)
	distribuidores.Get("/:id", distribuidorHandler.GetByID)
	distribuidores.Put("/:id", distribuidorHandler.Update)
	distribuidores.Patch("/:id", distribuidorHandler.Update)
	distribuidores.Delete("/:id", distribuidorHandler.Delete)

	puntosVenta := protected.Group("/puntos-venta")
	puntoVentaHandler := NewPuntoVentaHandler(deps.PuntoVentaUC)
	puntosVenta.Post("/", puntoVentaHandler.Create)
	puntosVenta.Get("/", puntoVentaHandler.List)
	puntosVenta.Get("/:id", puntoVentaHandler.GetByID)
	puntosVenta.Put("/:id", puntoVentaHandler.Update)
	puntosVenta.Patch("/:id", puntoVentaHandler.Update)
	puntosVenta.Delete("/:id", puntoVentaHandler.Delete)

	afiliaciones := protected.Group("/afiliaciones")
	afiliacionHandler := NewAfiliacionHandler(deps.AfiliacionUC)
	afiliaciones.Post("/", afiliacionHandler.Create)
	afiliaciones.Get("/", afiliacionHandler.List)
	afiliaciones.Get("/:id", afiliacionHandler.GetByID)
	afiliaciones.Put("/:id", afiliacionHandler.UpdateEstado)
	afiliaciones.Patch("/:id", afiliacionHandler.UpdateEstado)
	afiliaciones.Delete("/:id", afiliacionHandler.Delete)

	certificados := protected.Group("/certificados")
	certificadoHandler := NewCertificadoHandler(deps.CertificadoUC)
	certificados.Post("/", certificadoHandler.Create)
	certificados.Get("/", certificadoHandler.List)
	certificados.Get("/:id", certificadoHandler.GetByID)
	certificados.Put("/:id", certificadoHandler.Update)
	certificados.Patch("/:id", certificadoHandler.Update)
	certificados.Delete("/:id", certificadoHandler.Delete)
}
