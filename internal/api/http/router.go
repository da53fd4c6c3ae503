package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vcsystems/incident-service/internal/api/http/handlers"
	"github.com/vcsystems/incident-service/internal/auth"
	"github.com/vcsystems/incident-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Incidents      *handlers.IncidentsHandler
	SpareParts     *handlers.SparePartsHandler
	Faults         *handlers.FaultsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authProtected.Post("/logout", cfg.Auth.Logout)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)
	authProtected.Get("/me", cfg.Auth.Me)

	incidents := app.Group("/incidents", cfg.AuthMiddleware.Handle)
	incidents.Post("", auth.RequireRole(domain.RoleClient), cfg.Incidents.Create)
	incidents.Get("", auth.RequireRole(domain.RoleAdmin, domain.RoleManager), cfg.Incidents.List)
	incidents.Get("/statistics", auth.RequireRole(domain.RoleAdmin, domain.RoleManager), cfg.Incidents.Statistics)
	incidents.Get("/assigned", auth.RequireRole(domain.RoleTechnician), cfg.Incidents.ListMine)
	incidents.Get("/:id", auth.RequireAuthenticated(), cfg.Incidents.Get)
	incidents.Put("/:id/technician", auth.RequireRole(domain.RoleAdmin, domain.RoleManager), cfg.Incidents.AssignTechnician)
	incidents.Put("/:id/status", auth.RequireRole(domain.RoleTechnician, domain.RoleManager), cfg.Incidents.ChangeStatus)

	spareParts := app.Group("/spare-parts", cfg.AuthMiddleware.Handle)
	spareParts.Post("", auth.RequireRole(domain.RoleTechnician), cfg.SpareParts.Create)
	spareParts.Get("", auth.RequireRole(domain.RoleAdmin, domain.RoleManager), cfg.SpareParts.List)
	spareParts.Put("/:id/status", auth.RequireRole(domain.RoleTechnician, domain.RoleManager), cfg.SpareParts.UpdateStatus)

	faults := app.Group("/faults", cfg.AuthMiddleware.Handle)
	faults.Post("", auth.RequireRole(domain.RoleAdmin, domain.RoleManager), cfg.Faults.Create)
	faults.Get("", auth.RequireAuthenticated(), cfg.Faults.List)
	faults.Get("/:id", auth.RequireAuthenticated(), cfg.Faults.Get)
}
