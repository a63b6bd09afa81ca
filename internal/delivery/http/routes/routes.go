package routes

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/rocker1166/skilllink/internal/config"
	"github.com/rocker1166/skilllink/internal/database"
	"github.com/rocker1166/skilllink/internal/delivery/http/handler"
	"github.com/rocker1166/skilllink/internal/infrastructure/cache"
	"github.com/rocker1166/skilllink/internal/infrastructure/mail"
	"github.com/rocker1166/skilllink/internal/ws"
)

// Deps carries the long-lived process resources the route tree hangs off.
type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Mail   *mail.Dispatcher
	Logger *log.Logger
}

type Registry struct {
	health *handler.HealthHandler
	deps   Deps
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{health: handler.NewHealthHandler(), deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps)
}
