package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/groundops-service/internal/api/http/handlers"
	"github.com/spec-kit/groundops-service/internal/auth"
	"github.com/spec-kit/groundops-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Flights        *handlers.FlightsHandler
	Passengers     *handlers.PassengersHandler
	Bags           *handlers.BagsHandler
	Messages       *handlers.MessagesHandler
	Gate           *handlers.GateHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Everything except probes and login
// requires the credential cookie.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Post("/logout", cfg.Auth.Logout)
	authProtected.Get("/profile", cfg.Auth.Profile)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Get("/flights", cfg.Flights.List)
	protected.Put("/flights/:flight", auth.RequireRoles(domain.RoleAdmin, domain.RoleGate), cfg.Flights.Depart)

	protected.Get("/passengers", cfg.Passengers.List)
	protected.Post("/passengers", auth.RequireRoles(domain.RoleAdmin), cfg.Passengers.Create)
	protected.Put("/passengers", cfg.Passengers.Update)
	protected.Delete("/passengers", auth.RequireRoles(domain.RoleAdmin), cfg.Passengers.Delete)

	protected.Get("/bags", cfg.Bags.List)
	protected.Post("/bags", auth.RequireRoles(domain.RoleAdmin, domain.RoleAirline), cfg.Bags.Create)
	protected.Put("/bags", cfg.Bags.Move)
	protected.Delete("/bags", auth.RequireRoles(domain.RoleAdmin), cfg.Bags.Delete)

	protected.Get("/messages", cfg.Messages.List)
	protected.Post("/messages", cfg.Messages.Post)
	protected.Delete("/messages", auth.RequireRoles(domain.RoleAdmin), cfg.Messages.Delete)

	gate := protected.Group("/gate", auth.RequireRoles(domain.RoleAdmin, domain.RoleGate))
	gate.Get("/assignment", cfg.Gate.Get)
	gate.Post("/assignment", cfg.Gate.Set)
	gate.Delete("/assignment", cfg.Gate.Clear)

	admin := protected.Group("/admin", auth.RequireRoles(domain.RoleAdmin))
	admin.Get("/users", cfg.Users.List)
	admin.Post("/users", cfg.Users.Register)
	admin.Delete("/users", cfg.Users.Delete)
	admin.Post("/flights", cfg.Flights.Create)
	admin.Delete("/flights", cfg.Flights.Delete)
	admin.Get("/removals", cfg.Flights.Removals)
}
