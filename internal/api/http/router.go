package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/calendarapp/calendar-service/internal/api/http/handlers"
	"github.com/calendarapp/calendar-service/internal/auth"
	"github.com/calendarapp/calendar-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Events  *handlers.EventsHandler
	Gate    *auth.Gate
	Metrics *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/new", cfg.Auth.Register)
	authGroup.Post("/", cfg.Auth.Login)
	authGroup.Get("/renew", cfg.Gate.Handle, cfg.Auth.Renew)

	events := api.Group("/events", cfg.Gate.Handle)
	events.Get("/", cfg.Events.ListEvents)
	events.Post("/", cfg.Events.CreateEvent)
	events.Put("/:id", cfg.Events.UpdateEvent)
	events.Delete("/:id", cfg.Events.DeleteEvent)
}
