package provisioning

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/agency-api/internal/domain"
	"github.com/jhoicas/agency-api/internal/domain/entity"
)

// ActivityLogInput datos de una entrada del registro de actividad.
// Se requiere AgencyID o SubAccountID; con solo la sub-cuenta se deriva su agencia.
type ActivityLogInput struct {
	AgencyID     string
	Description  string
	SubAccountID string
}

// SaveActivityLogsNotification escribe una notificación "{actor} | {descripción}".
//
// Actor: el usuario local de la identidad; sin identidad, algún usuario de la agencia dueña
// de la sub-cuenta (actor de sistema). Si no se encuentra actor se registra en el log y se
// devuelve domain.ErrUserNotFound sin escribir la fila.
// Agencia: AgencyID explícito o la agencia de la sub-cuenta; si ninguna resuelve,
// domain.ErrAgencyUnresolvable.
func (uc *TenantUseCase) SaveActivityLogsNotification(ctx context.Context, identity *entity.Identity, in ActivityLogInput) error {
	var (
		actor *entity.User
		err   error
	)
	if identity == nil {
		actor, err = uc.userRepo.FindFirstBySubAccount(ctx, in.SubAccountID)
	} else {
		actor, err = uc.userRepo.GetByEmail(ctx, entity.NormalizeEmail(identity.Email))
	}
	if err != nil {
		return err
	}
	if actor == nil {
		uc.log.Warn().
			Str("agency_id", in.AgencyID).
			Str("subaccount_id", in.SubAccountID).
			Msg("no se encontró un usuario para la notificación")
	}

	agencyID := in.AgencyID
	if agencyID == "" {
		if in.SubAccountID == "" {
			return domain.ErrAgencyUnresolvable
		}
		sub, err := uc.subAccountRepo.GetByID(ctx, in.SubAccountID)
		if err != nil {
			return err
		}
		if sub != nil {
			agencyID = sub.AgencyID
		}
	}
	if agencyID == "" {
		return domain.ErrAgencyUnresolvable
	}
	if actor == nil {
		return domain.ErrUserNotFound
	}

	now := uc.now()
	return uc.notificationRepo.Create(ctx, &entity.Notification{
		ID:           uuid.NewString(),
		Message:      entity.FormatNotificationMessage(actor.Name, in.Description),
		AgencyID:     agencyID,
		SubAccountID: in.SubAccountID,
		UserID:       actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// GetNotificationAndUser lista las notificaciones de la agencia con su actor, más recientes
// primero. Requiere pertenecer a la agencia.
func (uc *TenantUseCase) GetNotificationAndUser(ctx context.Context, identity *entity.Identity, agencyID string) ([]*entity.Notification, error) {
	if _, err := uc.authorizeAgency(ctx, identity, agencyID); err != nil {
		return nil, err
	}
	return uc.notificationRepo.ListByAgency(ctx, agencyID)
}
