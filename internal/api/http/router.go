package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shubh1628/Dabba-delight/internal/api/http/handlers"
	"github.com/shubh1628/Dabba-delight/internal/auth"
	"github.com/shubh1628/Dabba-delight/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	Session           *handlers.SessionHandler
	Pages             *handlers.PagesHandler
	Users             *handlers.UsersHandler
	SessionMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes. Health probes are registered ahead of
// the session middleware and never touch the session store.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Use(cfg.SessionMiddleware.Handle)

	for _, route := range auth.Routes() {
		var chain []fiber.Handler
		if route.Guarded() {
			chain = append(chain, auth.RequireRoute(route))
		}
		chain = append(chain, cfg.Pages.Render(route))
		app.Get(route.Path, chain...)
	}
	app.Get(auth.DashboardPath, cfg.Pages.DashboardAlias)

	api := app.Group("/api")
	api.Post("/auth/login", cfg.Auth.Login)
	api.Post("/auth/signup", cfg.Auth.Signup)
	api.Post("/auth/logout", cfg.Auth.Logout)

	api.Get("/session", cfg.Session.Current)
	api.Get("/session/events", cfg.Session.Events)
	api.Get("/nav", cfg.Session.Nav)

	admin := api.Group("/admin", auth.RequireUserType(domain.UserTypeAdmin))
	admin.Get("/users", cfg.Users.List)
}
