// Package provisioning implementa el flujo de aprovisionamiento de tenants: resolver una
// identidad a su agencia, consumir invitaciones pendientes, crear los registros que falten
// (usuario, pipeline y navegación por defecto) y decidir a dónde enviar al usuario.
package provisioning

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/agency-api/internal/application/ports"
	"github.com/jhoicas/agency-api/internal/domain"
	"github.com/jhoicas/agency-api/internal/domain/entity"
	"github.com/jhoicas/agency-api/internal/domain/repository"
)

// Config parámetros del flujo que vienen de la configuración.
type Config struct {
	// InvitationRedirectURL a dónde vuelve un invitado tras registrarse en el proveedor.
	InvitationRedirectURL string
}

// TenantUseCase casos de uso de aprovisionamiento de agencias, sub-cuentas y usuarios.
// La identidad actual se recibe siempre como parámetro explícito (nil = no autenticado).
type TenantUseCase struct {
	txRunner         TenantTxRunner
	userRepo         repository.UserRepository
	agencyRepo       repository.AgencyRepository
	subAccountRepo   repository.SubAccountRepository
	invitationRepo   repository.InvitationRepository
	notificationRepo repository.NotificationRepository
	identity         ports.IdentityProvider
	cfg              Config
	log              zerolog.Logger
	now              func() time.Time
}

// NewTenantUseCase construye el caso de uso.
func NewTenantUseCase(
	txRunner TenantTxRunner,
	userRepo repository.UserRepository,
	agencyRepo repository.AgencyRepository,
	subAccountRepo repository.SubAccountRepository,
	invitationRepo repository.InvitationRepository,
	notificationRepo repository.NotificationRepository,
	identity ports.IdentityProvider,
	cfg Config,
	log zerolog.Logger,
) *TenantUseCase {
	return &TenantUseCase{
		txRunner:         txRunner,
		userRepo:         userRepo,
		agencyRepo:       agencyRepo,
		subAccountRepo:   subAccountRepo,
		invitationRepo:   invitationRepo,
		notificationRepo: notificationRepo,
		identity:         identity,
		cfg:              cfg,
		log:              log.With().Str("component", "provisioning").Logger(),
		now:              time.Now,
	}
}

// GetAuthUserDetails devuelve el usuario de la identidad con su agencia (navegación y
// sub-cuentas) y sus permisos. Sin identidad devuelve (nil, nil). Solo lectura.
func (uc *TenantUseCase) GetAuthUserDetails(ctx context.Context, identity *entity.Identity) (*entity.User, error) {
	if identity == nil {
		return nil, nil
	}
	return uc.userRepo.GetDetailsByEmail(ctx, entity.NormalizeEmail(identity.Email))
}

// InitUserInput campos que InitUser aplica sobre el usuario.
type InitUserInput struct {
	Role      string
	Name      string
	AvatarURL string
}

// InitUser crea o actualiza el usuario local de la identidad y replica su rol en el
// proveedor de identidad. Sin identidad devuelve (nil, nil).
func (uc *TenantUseCase) InitUser(ctx context.Context, identity *entity.Identity, in InitUserInput) (*entity.User, error) {
	if identity == nil {
		return nil, nil
	}
	if in.Role != "" && !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleSubAccountUser
	}

	email := entity.NormalizeEmail(identity.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := existing
	if user == nil {
		user = &entity.User{
			ID:        identity.ID,
			AvatarURL: identity.ImageURL,
			Email:     email,
			Name:      identity.FullName(),
			Role:      role,
			CreatedAt: now,
		}
	} else {
		if in.Role != "" {
			user.Role = in.Role
		}
		if in.Name != "" {
			user.Name = in.Name
		}
		if in.AvatarURL != "" {
			user.AvatarURL = in.AvatarURL
		}
	}
	user.UpdatedAt = now

	saved, err := uc.userRepo.Upsert(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := uc.identity.UpdatePrivateMetadata(ctx, identity.ID, map[string]any{"role": role}); err != nil {
		return nil, err
	}
	return saved, nil
}

// authorizeAgency verifica que la identidad pertenece a la agencia y, si se indican roles,
// que su rol local es uno de ellos. El rol se toma de la BD, no del token.
func (uc *TenantUseCase) authorizeAgency(ctx context.Context, identity *entity.Identity, agencyID string, roles ...string) (*entity.User, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	if agencyID == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(ctx, entity.NormalizeEmail(identity.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.AgencyID != agencyID {
		return nil, domain.ErrForbidden
	}
	if len(roles) > 0 && !slices.Contains(roles, user.Role) {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// withIDs asigna IDs nuevos a las opciones de navegación que no tengan.
func (uc *TenantUseCase) withIDs(options []entity.SidebarOption) []entity.SidebarOption {
	now := uc.now()
	for i := range options {
		if options[i].ID == "" {
			options[i].ID = uuid.NewString()
		}
		options[i].CreatedAt = now
		options[i].UpdatedAt = now
	}
	return options
}
