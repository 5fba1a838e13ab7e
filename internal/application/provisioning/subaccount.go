package provisioning

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/agency-api/internal/domain/entity"
	"github.com/jhoicas/agency-api/internal/domain/repository"
)

// UpsertSubAccount crea o actualiza una sub-cuenta por ID.
//
// Devuelve (nil, nil) sin escribir si falta CompanyEmail o si la agencia no tiene un
// AGENCY_OWNER (esto último queda en el log): el llamador debe tratar nil como "no creada".
// Al crearla, en la misma transacción: permiso con acceso para el dueño, pipeline
// "Lead Cycle" y las ocho opciones de navegación.
func (uc *TenantUseCase) UpsertSubAccount(ctx context.Context, sub *entity.SubAccount) (*entity.SubAccount, error) {
	if sub == nil || sub.CompanyEmail == "" {
		return nil, nil
	}

	owner, err := uc.userRepo.FindAgencyOwner(ctx, sub.AgencyID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		uc.log.Error().
			Str("agency_id", sub.AgencyID).
			Msg("no se pudo crear la sub-cuenta: la agencia no tiene AGENCY_OWNER")
		return nil, nil
	}

	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	now := uc.now()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}
	sub.UpdatedAt = now

	err = uc.txRunner.RunTenant(ctx, func(
		_ repository.AgencyRepository,
		subAccountRepo repository.SubAccountRepository,
		_ repository.UserRepository,
	) error {
		created, err := subAccountRepo.Upsert(ctx, sub)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}
		if err := subAccountRepo.CreatePermission(ctx, &entity.Permission{
			ID:           uuid.NewString(),
			Email:        owner.Email,
			SubAccountID: sub.ID,
			Access:       true,
		}); err != nil {
			return err
		}
		if err := subAccountRepo.CreatePipeline(ctx, &entity.Pipeline{
			ID:           uuid.NewString(),
			Name:         entity.DefaultPipelineName,
			SubAccountID: sub.ID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return err
		}
		return subAccountRepo.CreateSidebarOptions(ctx, uc.withIDs(entity.DefaultSubAccountSidebar(sub.ID)))
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// SaveSubAccount guarda la sub-cuenta desde el formulario de la agencia (dueño o admin) y
// registra la actividad. Devuelve (nil, nil) en los mismos casos que UpsertSubAccount.
func (uc *TenantUseCase) SaveSubAccount(ctx context.Context, identity *entity.Identity, sub *entity.SubAccount) (*entity.SubAccount, error) {
	if _, err := uc.authorizeAgency(ctx, identity, sub.AgencyID, entity.RoleAgencyOwner, entity.RoleAgencyAdmin); err != nil {
		return nil, err
	}
	saved, err := uc.UpsertSubAccount(ctx, sub)
	if err != nil || saved == nil {
		return saved, err
	}
	if err := uc.SaveActivityLogsNotification(ctx, identity, ActivityLogInput{
		AgencyID:     saved.AgencyID,
		Description:  "Updated sub account | " + saved.Name,
		SubAccountID: saved.ID,
	}); err != nil {
		return nil, err
	}
	return saved, nil
}
