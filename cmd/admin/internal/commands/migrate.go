package commands

import (
	"context"

	"github.com/jhoicas/agency-api/internal/infrastructure/postgres"
)

type MigrateCmd struct{}

func (m *MigrateCmd) Run(ctx context.Context, globals *Globals) error {
	_, log, pool, err := setup(ctx, globals)
	if err != nil {
		return err
	}
	defer pool.Close()

	return postgres.RunMigrations(ctx, pool, log.Component("migrations"))
}
