package app

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/rocker1166/skilllink/internal/config"
	"github.com/rocker1166/skilllink/internal/database"
	"github.com/rocker1166/skilllink/internal/database/migration"
	dbpostgres "github.com/rocker1166/skilllink/internal/database/postgres"
	"github.com/rocker1166/skilllink/internal/infrastructure/cache"
	"github.com/rocker1166/skilllink/internal/infrastructure/mail"
	"github.com/rocker1166/skilllink/internal/ws"
)

// Container owns the process-wide resources: the Postgres pool, the Redis
// wrapper, the notification hub and the mail dispatcher.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Mail   *mail.Dispatcher
	Logger *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		Hub:    hub,
		Mail:   mail.NewDispatcher(mail.LogMailer{Logger: logger}, logger, 30*time.Second),
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
