package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/multisoat/certificados-api/internal/application/auth"
	"github.com/multisoat/certificados-api/internal/application/registro"
	"github.com/multisoat/certificados-api/internal/application/usecase"
	"github.com/multisoat/certificados-api/internal/application/verificacion"
	"github.com/multisoat/certificados-api/internal/infrastructure/correo"
	"github.com/multisoat/certificados-api/internal/infrastructure/dbdata"
	"github.com/multisoat/certificados-api/internal/infrastructure/postgres"
	httpRouter "github.com/multisoat/certificados-api/internal/interfaces/http"
	"github.com/multisoat/certificados-api/pkg/config"
	"github.com/multisoat/certificados-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (las escrituras del registro usan el TxRunner)
	entidadRepo := postgres.NewEntidadRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	usuarioRolRepo := postgres.NewUsuarioRolRepository(pool)
	afiliacionRepo := postgres.NewAfiliacionRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	distribuidorRepo := postgres.NewDistribuidorRepository(pool)
	puntoVentaRepo := postgres.NewPuntoVentaRepository(pool)
	certificadoRepo := postgres.NewCertificadoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	verificacionSvc := verificacion.New(usuarioRepo, usuarioRolRepo, entidadRepo, log)
	externoClient := dbdata.NewClient(cfg.DBData, log)
	invitador := correo.NewInvitador(log)
	registroSvc := registro.New(txRunner, entidadRepo, afiliacionRepo, verificacionSvc, externoClient, invitador, log)

	proveedorUC := usecase.NewProveedorUseCase(proveedorRepo)
	distribuidorUC := usecase.NewDistribuidorUseCase(distribuidorRepo, proveedorRepo)
	puntoVentaUC := usecase.NewPuntoVentaUseCase(puntoVentaRepo)
	afiliacionUC := usecase.NewAfiliacionUseCase(afiliacionRepo, puntoVentaRepo, proveedorRepo)
	certificadoUC := usecase.NewCertificadoUseCase(certificadoRepo, proveedorRepo)

	authUC := auth.NewUseCase(usuarioRepo, usuarioRolRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegistroSvc:     registroSvc,
		VerificacionSvc: verificacionSvc,
		AuthUC:          authUC,
		ProveedorUC:     proveedorUC,
		DistribuidorUC:  distribuidorUC,
		PuntoVentaUC:    puntoVentaUC,
		AfiliacionUC:    afiliacionUC,
		CertificadoUC:   certificadoUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	// Apagado ordenado: esperar SIGINT/SIGTERM y drenar conexiones
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("señal de apagado recibida")
		if err := app.ShutdownWithTimeout(15 * time.Second); err != nil {
			log.Error().Err(err).Msg("apagado del servidor")
		}
	}()

	addr := cfg.HTTP.Addr()
	log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("servidor HTTP")
	}
	log.Info().Msg("aplicación detenida")
}
