package provisioning

import (
	"context"
	"net/url"
	"strings"

	"github.com/jhoicas/agency-api/internal/domain"
	"github.com/jhoicas/agency-api/internal/domain/entity"
)

// StateSeparator separa path e ID de tenant en el parámetro state ("{path}___{id}").
const StateSeparator = "___"

// LandingQuery parámetros de la página de aterrizaje.
type LandingQuery struct {
	Plan  string
	State string
	Code  string
}

// Landing decisión de aterrizaje. Solo uno de los campos aplica:
// Redirect (destino), NotAuthorized o CreateAgency (mostrar el formulario de agencia
// prellenado con CompanyEmail).
type Landing struct {
	Redirect      string
	NotAuthorized bool
	CreateAgency  bool
	CompanyEmail  string
}

// ResolveAgencyLanding decide a dónde va el usuario que entra a /agency. Es pura.
func ResolveAgencyLanding(agencyID string, user *entity.User, q LandingQuery) Landing {
	if agencyID == "" {
		return Landing{CreateAgency: true}
	}
	role := ""
	if user != nil {
		role = user.Role
	}
	switch {
	case entity.IsSubAccountRole(role):
		return Landing{Redirect: "/subaccount"}
	case entity.IsAgencyRole(role):
		if q.Plan != "" {
			return Landing{Redirect: "/agency/" + agencyID + "/billing?plan=" + url.QueryEscape(q.Plan)}
		}
		if q.State != "" {
			path, stateAgency, _ := strings.Cut(q.State, StateSeparator)
			if stateAgency == "" {
				return Landing{NotAuthorized: true}
			}
			return Landing{Redirect: "/agency/" + stateAgency + "/" + path + "?code=" + url.QueryEscape(q.Code)}
		}
		return Landing{Redirect: "/agency/" + agencyID}
	}
	return Landing{NotAuthorized: true}
}

// ResolveSubAccountLanding decide a dónde va el usuario que entra a /subaccount: la
// sub-cuenta del state si viene, si no la primera a la que tiene acceso. Es pura.
func ResolveSubAccountLanding(agencyID string, user *entity.User, q LandingQuery) Landing {
	if agencyID == "" {
		return Landing{NotAuthorized: true}
	}
	if q.State != "" {
		path, stateSub, _ := strings.Cut(q.State, StateSeparator)
		if stateSub == "" {
			return Landing{NotAuthorized: true}
		}
		return Landing{Redirect: "/subaccount/" + stateSub + "/" + path + "?code=" + url.QueryEscape(q.Code)}
	}
	if user != nil {
		for _, p := range user.Permissions {
			if p.Access {
				return Landing{Redirect: "/subaccount/" + p.SubAccountID}
			}
		}
	}
	return Landing{NotAuthorized: true}
}

// AgencyLanding consume la invitación pendiente (si hay), carga el usuario y resuelve el
// aterrizaje de /agency. Sin identidad devuelve domain.ErrUnauthenticated.
func (uc *TenantUseCase) AgencyLanding(ctx context.Context, identity *entity.Identity, q LandingQuery) (Landing, error) {
	agencyID, user, err := uc.landingContext(ctx, identity)
	if err != nil {
		return Landing{}, err
	}
	l := ResolveAgencyLanding(agencyID, user, q)
	if l.CreateAgency {
		l.CompanyEmail = entity.NormalizeEmail(identity.Email)
	}
	return l, nil
}

// SubAccountLanding como AgencyLanding, para /subaccount.
func (uc *TenantUseCase) SubAccountLanding(ctx context.Context, identity *entity.Identity, q LandingQuery) (Landing, error) {
	agencyID, user, err := uc.landingContext(ctx, identity)
	if err != nil {
		return Landing{}, err
	}
	return ResolveSubAccountLanding(agencyID, user, q), nil
}

func (uc *TenantUseCase) landingContext(ctx context.Context, identity *entity.Identity) (string, *entity.User, error) {
	if identity == nil {
		return "", nil, domain.ErrUnauthenticated
	}
	agencyID, err := uc.VerifyAndAcceptInvitation(ctx, identity)
	if err != nil {
		return "", nil, err
	}
	user, err := uc.GetAuthUserDetails(ctx, identity)
	if err != nil {
		return "", nil, err
	}
	if agencyID == "" && user != nil {
		agencyID = user.AgencyID
	}
	return agencyID, user, nil
}
