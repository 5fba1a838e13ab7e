package provisioning

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jhoicas/agency-api/internal/domain"
	"github.com/jhoicas/agency-api/internal/domain/entity"
)

// DescriptionJoined descripción de la notificación que registra la aceptación de una invitación.
const DescriptionJoined = "Joined"

// VerifyAndAcceptInvitation resuelve la agencia de la identidad consumiendo, si existe, su
// invitación PENDING. Devuelve el ID de la agencia o "" si la identidad aún no tiene agencia
// (o si la invitación era de AGENCY_OWNER, caso en que no se crea usuario).
// Sin identidad devuelve domain.ErrUnauthenticated: la capa HTTP lo convierte en redirección.
// Si el usuario ya pertenece a otra agencia devuelve domain.ErrConflict y la invitación queda
// pendiente.
//
// Orden: crear usuario → notificación "Joined" → metadata del proveedor → borrar invitación.
// No hay compensación si el borrado falla tras actualizar la metadata; reintentar sobrescribe
// el mismo estado.
func (uc *TenantUseCase) VerifyAndAcceptInvitation(ctx context.Context, identity *entity.Identity) (string, error) {
	if identity == nil {
		return "", domain.ErrUnauthenticated
	}
	email := entity.NormalizeEmail(identity.Email)

	inv, err := uc.invitationRepo.GetPendingByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if inv == nil {
		user, err := uc.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return "", err
		}
		if user == nil {
			return "", nil
		}
		return user.AgencyID, nil
	}

	now := uc.now()
	created, err := uc.CreateTeamUser(ctx, inv.AgencyID, &entity.User{
		ID:        identity.ID,
		Email:     inv.Email,
		AgencyID:  inv.AgencyID,
		AvatarURL: identity.ImageURL,
		Name:      identity.FullName(),
		Role:      inv.Role,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return "", err
	}

	err = uc.SaveActivityLogsNotification(ctx, identity, ActivityLogInput{
		AgencyID:    inv.AgencyID,
		Description: DescriptionJoined,
	})
	// Un dueño invitado que aún no tiene usuario local no tiene actor para la notificación.
	if err != nil && !(created == nil && errors.Is(err, domain.ErrUserNotFound)) {
		return "", err
	}

	if created == nil {
		return "", nil
	}

	role := created.Role
	if role == "" {
		role = entity.RoleSubAccountUser
	}
	if err := uc.identity.UpdatePrivateMetadata(ctx, identity.ID, map[string]any{"role": role}); err != nil {
		return "", err
	}
	if err := uc.invitationRepo.DeleteByEmail(ctx, created.Email); err != nil {
		return "", err
	}

	uc.log.Info().
		Str("agency_id", created.AgencyID).
		Str("user_id", created.ID).
		Str("role", created.Role).
		Msg("invitación aceptada")
	return created.AgencyID, nil
}

// CreateTeamUser crea el usuario de un miembro del equipo. Para AGENCY_OWNER no crea nada y
// devuelve (nil, nil): el dueño ya existe desde la creación de la agencia.
// La escritura es un upsert por email, así un doble envío no duplica filas.
// Un usuario que ya pertenece a otra agencia no se mueve: devuelve domain.ErrConflict.
func (uc *TenantUseCase) CreateTeamUser(ctx context.Context, agencyID string, user *entity.User) (*entity.User, error) {
	if user.Role == entity.RoleAgencyOwner {
		return nil, nil
	}
	user.AgencyID = agencyID
	user.Email = entity.NormalizeEmail(user.Email)

	existing, err := uc.userRepo.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.AgencyID != "" && existing.AgencyID != agencyID {
		uc.log.Warn().
			Str("agency_id", agencyID).
			Str("current_agency_id", existing.AgencyID).
			Str("user_id", existing.ID).
			Msg("invitación rechazada: el usuario ya pertenece a otra agencia")
		return nil, domain.ErrConflict
	}
	return uc.userRepo.Upsert(ctx, user)
}

// SendInvitation registra una invitación PENDING para email y pide al proveedor de
// identidad que envíe su correo. Solo dueños y admins de la agencia pueden invitar.
func (uc *TenantUseCase) SendInvitation(ctx context.Context, identity *entity.Identity, agencyID, email, role string) (*entity.Invitation, error) {
	if _, err := uc.authorizeAgency(ctx, identity, agencyID, entity.RoleAgencyOwner, entity.RoleAgencyAdmin); err != nil {
		return nil, err
	}
	email = entity.NormalizeEmail(email)
	if email == "" || !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	inv := &entity.Invitation{
		ID:       uuid.NewString(),
		Email:    email,
		AgencyID: agencyID,
		Status:   entity.InvitationPending,
		Role:     role,
	}
	if err := uc.invitationRepo.Upsert(ctx, inv); err != nil {
		return nil, err
	}
	if err := uc.SaveActivityLogsNotification(ctx, identity, ActivityLogInput{
		AgencyID:    agencyID,
		Description: "Invited " + email,
	}); err != nil {
		return nil, err
	}
	if err := uc.identity.CreateInvitation(ctx, email, uc.cfg.InvitationRedirectURL); err != nil {
		return nil, err
	}
	return inv, nil
}
