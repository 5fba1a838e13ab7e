package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/agency-api/internal/application/provisioning"
	"github.com/jhoicas/agency-api/internal/domain/routing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TenantUC   *provisioning.TenantUseCase
	HostRouter *routing.HostRouter
	JWTSecret  string
	SignInURL  string
	Logger     zerolog.Logger
}

// Router registra el middleware de host y las rutas de la aplicación.
// Las rutas de sitio de tenant (/:domain/*) van al final: reciben los rewrites por subdominio.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(IdentityMiddleware(deps.JWTSecret))
	app.Use(HostRouting(deps.HostRouter, deps.SignInURL, deps.Logger))

	// Sitio público
	app.Get("/site", Site)

	// Aterrizaje (identidad opcional; sin sesión redirige al login)
	onboarding := NewOnboardingHandler(deps.TenantUC, deps.SignInURL)
	app.Get("/agency/sign-in", onboarding.SignIn)
	app.Get("/agency", onboarding.Agency)
	app.Get("/subaccount", onboarding.SubAccount)

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	userHandler := NewUserHandler(deps.TenantUC)
	api.Get("/me", userHandler.Me)
	api.Post("/users/init", userHandler.Init)

	agencies := api.Group("/agencies")
	agencyHandler := NewAgencyHandler(deps.TenantUC)
	agencies.Post("/", agencyHandler.Save)
	agencies.Patch("/:id", agencyHandler.Update)
	agencies.Delete("/:id", agencyHandler.Delete)
	agencies.Get("/:id/notifications", agencyHandler.Notifications)
	agencies.Post("/:id/invitations", agencyHandler.Invite)

	subAccountHandler := NewSubAccountHandler(deps.TenantUC)
	api.Post("/subaccounts", subAccountHandler.Save)

	notificationHandler := NewNotificationHandler(deps.TenantUC)
	api.Post("/notifications", notificationHandler.Create)

	// Sitios de tenant
	app.Get("/:domain", TenantSite)
	app.Get("/:domain/*", TenantSite)
}
