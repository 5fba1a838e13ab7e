// admin herramientas de operación: migraciones, tokens de prueba e invitaciones.
//
// Uso: go run ./cmd/admin <comando> [flags]
package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/jhoicas/agency-api/cmd/admin/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Migrate commands.MigrateCmd `cmd:"" help:"Aplicar migraciones embebidas"`
		Token   commands.TokenCmd   `cmd:"" help:"Emitir un token de identidad firmado"`
		Invite  commands.InviteCmd  `cmd:"" help:"Invitar un miembro a una agencia"`
		Debug   bool                `help:"Logs en nivel debug."`
		Version kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("admin"),
		kong.Description("Operación de agency-api"),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
