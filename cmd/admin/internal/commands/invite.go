package commands

import (
	"context"
	"fmt"

	"github.com/jhoicas/agency-api/internal/application/provisioning"
	"github.com/jhoicas/agency-api/internal/domain/entity"
	"github.com/jhoicas/agency-api/internal/infrastructure/clerk"
	"github.com/jhoicas/agency-api/internal/infrastructure/postgres"
)

// InviteCmd envía una invitación en nombre de un dueño o admin existente de la agencia.
type InviteCmd struct {
	Agency string `help:"ID de la agencia" required:""`
	Email  string `help:"Email del invitado" required:""`
	Role   string `help:"Rol del invitado" default:"SUBACCOUNT_USER" enum:"AGENCY_OWNER,AGENCY_ADMIN,SUBACCOUNT_USER,SUBACCOUNT_GUEST"`
	As     string `help:"Email del dueño o admin que invita" required:""`
}

func (i *InviteCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, log, pool, err := setup(ctx, globals)
	if err != nil {
		return err
	}
	defer pool.Close()

	uc := provisioning.NewTenantUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewUserRepository(pool),
		postgres.NewAgencyRepository(pool),
		postgres.NewSubAccountRepository(pool),
		postgres.NewInvitationRepository(pool),
		postgres.NewNotificationRepository(pool),
		clerk.NewClient(cfg.Identity.APIURL, cfg.Identity.SecretKey),
		provisioning.Config{InvitationRedirectURL: cfg.Identity.InvitationRedirectURL},
		log.Zerolog(),
	)

	inv, err := uc.SendInvitation(ctx, &entity.Identity{Email: i.As}, i.Agency, i.Email, i.Role)
	if err != nil {
		return fmt.Errorf("invitar %s: %w", i.Email, err)
	}
	fmt.Printf("%s\t%s\t%s\t%s\n", inv.ID, inv.Email, inv.Role, inv.Status)
	return nil
}
