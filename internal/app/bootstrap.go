package app

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/rocker1166/skilllink/internal/config"
	"github.com/rocker1166/skilllink/internal/delivery/http/middleware"
	"github.com/rocker1166/skilllink/internal/delivery/http/routes"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)

	routes.NewRegistry(routes.Deps{
		Config: c.Config,
		DB:     c.DB,
		Cache:  c.Cache,
		Hub:    c.Hub,
		Mail:   c.Mail,
		Logger: c.Logger,
	}).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app. The returned cleanup
// releases the container's resources and is safe to call once.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
