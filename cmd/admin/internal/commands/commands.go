package commands

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/agency-api/internal/infrastructure/postgres"
	"github.com/jhoicas/agency-api/pkg/config"
	"github.com/jhoicas/agency-api/pkg/logger"
)

type Globals struct {
	Debug   bool
	Version string
}

// setup carga configuración, logger y pool compartidos por los comandos que usan la BD.
func setup(ctx context.Context, globals *Globals) (*config.Config, *logger.Logger, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	level := cfg.App.LogLevel
	if globals.Debug {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: level, Service: "admin"})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, pool, nil
}
