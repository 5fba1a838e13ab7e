package provisioning

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jhoicas/agency-api/internal/domain"
	"github.com/jhoicas/agency-api/internal/domain/entity"
	"github.com/jhoicas/agency-api/internal/domain/repository"
)

// UpsertAgency crea o actualiza la agencia por ID. Sin CompanyEmail no escribe nada y
// devuelve (nil, nil).
// Al crearla, en la misma transacción, conecta el usuario cuyo email es CompanyEmail y
// siembra las seis opciones de navegación. La actualización no toca la navegación.
// plan es informativo: la suscripción la gestiona el proveedor de pagos.
func (uc *TenantUseCase) UpsertAgency(ctx context.Context, agency *entity.Agency, plan entity.Plan) (*entity.Agency, error) {
	if agency == nil || agency.CompanyEmail == "" {
		return nil, nil
	}
	if agency.ID == "" {
		agency.ID = uuid.NewString()
	}
	now := uc.now()
	if agency.CreatedAt.IsZero() {
		agency.CreatedAt = now
	}
	agency.UpdatedAt = now

	var created bool
	err := uc.txRunner.RunTenant(ctx, func(
		agencyRepo repository.AgencyRepository,
		_ repository.SubAccountRepository,
		userRepo repository.UserRepository,
	) error {
		var err error
		created, err = agencyRepo.Upsert(ctx, agency)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}
		if err := userRepo.AssignAgency(ctx, entity.NormalizeEmail(agency.CompanyEmail), agency.ID); err != nil {
			return err
		}
		return agencyRepo.CreateSidebarOptions(ctx, uc.withIDs(entity.DefaultAgencySidebar(agency.ID)))
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("agency_id", agency.ID).
		Bool("created", created).
		Str("plan", string(plan)).
		Msg("agencia guardada")
	return agency, nil
}

// SaveAgency es el onboarding del formulario de agencia: si la agencia ya existe exige ser
// dueño o admin y la actualiza; si es nueva inicializa al usuario como AGENCY_OWNER y la crea.
func (uc *TenantUseCase) SaveAgency(ctx context.Context, identity *entity.Identity, agency *entity.Agency, plan entity.Plan) (*entity.Agency, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	if agency == nil {
		return nil, domain.ErrInvalidInput
	}
	if agency.ID != "" {
		existing, err := uc.agencyRepo.GetByID(ctx, agency.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if _, err := uc.authorizeAgency(ctx, identity, agency.ID, entity.RoleAgencyOwner, entity.RoleAgencyAdmin); err != nil {
				return nil, err
			}
			agency.CreatedAt = existing.CreatedAt
			return uc.UpsertAgency(ctx, agency, plan)
		}
	}
	if _, err := uc.InitUser(ctx, identity, InitUserInput{Role: entity.RoleAgencyOwner}); err != nil {
		return nil, err
	}
	return uc.UpsertAgency(ctx, agency, plan)
}

// UpdateAgencyInput campos opcionales para actualizar una agencia (nil = sin cambio).
type UpdateAgencyInput struct {
	Name             *string
	AgencyLogo       *string
	CompanyEmail     *string
	CompanyPhone     *string
	WhiteLabel       *bool
	Address          *string
	City             *string
	ZipCode          *string
	State            *string
	Country          *string
	Goal             *int
	ConnectAccountID *string
	CustomerID       *string
}

// UpdateAgencyDetails aplica una actualización parcial. Requiere ser dueño o admin.
func (uc *TenantUseCase) UpdateAgencyDetails(ctx context.Context, identity *entity.Identity, agencyID string, in UpdateAgencyInput) (*entity.Agency, error) {
	if _, err := uc.authorizeAgency(ctx, identity, agencyID, entity.RoleAgencyOwner, entity.RoleAgencyAdmin); err != nil {
		return nil, err
	}
	agency, err := uc.agencyRepo.GetByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, domain.ErrNotFound
	}
	applyString(&agency.Name, in.Name)
	applyString(&agency.AgencyLogo, in.AgencyLogo)
	applyString(&agency.CompanyEmail, in.CompanyEmail)
	applyString(&agency.CompanyPhone, in.CompanyPhone)
	applyString(&agency.Address, in.Address)
	applyString(&agency.City, in.City)
	applyString(&agency.ZipCode, in.ZipCode)
	applyString(&agency.State, in.State)
	applyString(&agency.Country, in.Country)
	applyString(&agency.ConnectAccountID, in.ConnectAccountID)
	applyString(&agency.CustomerID, in.CustomerID)
	if in.WhiteLabel != nil {
		agency.WhiteLabel = *in.WhiteLabel
	}
	if in.Goal != nil {
		agency.Goal = *in.Goal
	}
	agency.UpdatedAt = uc.now()

	if err := uc.agencyRepo.Update(ctx, agency); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return agency, nil
}

// DeleteAgency elimina la agencia (en cascada sus sub-cuentas y navegación). Solo el dueño.
func (uc *TenantUseCase) DeleteAgency(ctx context.Context, identity *entity.Identity, agencyID string) error {
	if _, err := uc.authorizeAgency(ctx, identity, agencyID, entity.RoleAgencyOwner); err != nil {
		return err
	}
	return uc.agencyRepo.Delete(ctx, agencyID)
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
