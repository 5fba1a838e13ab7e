package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/agency-api/internal/application/dto"
	"github.com/jhoicas/agency-api/internal/application/provisioning"
	"github.com/jhoicas/agency-api/internal/domain/routing"
	"github.com/jhoicas/agency-api/internal/infrastructure/clerk"
	"github.com/jhoicas/agency-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/agency-api/internal/interfaces/http"
	"github.com/jhoicas/agency-api/pkg/config"
	"github.com/jhoicas/agency-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(ctx, pool, log.Component("migrations")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	hostRouter, err := routing.NewHostRouter(routing.Config{
		BaseDomain:      cfg.Routing.BaseDomain,
		ProtectedRoutes: cfg.Routing.ProtectedRoutes,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("rutas protegidas")
	}

	tenantUC := provisioning.NewTenantUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewUserRepository(pool),
		postgres.NewAgencyRepository(pool),
		postgres.NewSubAccountRepository(pool),
		postgres.NewInvitationRepository(pool),
		postgres.NewNotificationRepository(pool),
		clerk.NewClient(cfg.Identity.APIURL, cfg.Identity.SecretKey),
		provisioning.Config{InvitationRedirectURL: cfg.Identity.InvitationRedirectURL},
		log.Zerolog(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Agency API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TenantUC:   tenantUC,
		HostRouter: hostRouter,
		JWTSecret:  cfg.JWT.Secret,
		SignInURL:  cfg.Routing.SignInURL,
		Logger:     log.Component("host-router"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
