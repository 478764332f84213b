package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Analysis       *handlers.AnalysisHandler
	Dictionaries   *handlers.DictionariesHandler
	Departments    *handlers.DepartmentsHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	protected.Get("/users/me", cfg.Users.Me)
	protected.Get("/users", auth.Require(auth.CanListUsers), cfg.Users.List)

	protected.Post("/analysis/tokenize", cfg.Analysis.Tokenize)
	protected.Post("/analysis/classify", cfg.Analysis.Classify)

	protected.Get("/dictionaries/:kind", cfg.Dictionaries.List)
	protected.Post("/dictionaries/:kind", auth.Require(auth.CanManageDictionaries), cfg.Dictionaries.Add)

	protected.Get("/departments", cfg.Departments.List)
	protected.Post("/departments", auth.Require(auth.CanManageDepartments), cfg.Departments.Create)

	protected.Post("/tickets", cfg.Tickets.CreateTicket)
	protected.Get("/tickets", cfg.Tickets.ListTickets)
	protected.Get("/tickets/:id", cfg.Tickets.GetTicket)
	protected.Patch("/tickets/:id/status", auth.Require(auth.CanManageTickets), cfg.Tickets.UpdateStatus)
	protected.Post("/tickets/:id/reclassify", auth.Require(auth.CanManageTickets), cfg.Tickets.Reclassify)
}
