package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agency-api/internal/application/dto"
	"github.com/jhoicas/agency-api/internal/application/provisioning"
	"github.com/jhoicas/agency-api/internal/domain"
)

// OnboardingHandler páginas de aterrizaje de agencia y sub-cuenta.
type OnboardingHandler struct {
	uc        *provisioning.TenantUseCase
	signInURL string
}

// NewOnboardingHandler construye el handler de aterrizaje; signInURL es el destino sin sesión.
func NewOnboardingHandler(uc *provisioning.TenantUseCase, signInURL string) *OnboardingHandler {
	return &OnboardingHandler{uc: uc, signInURL: signInURL}
}

// SignIn godoc
// @Summary      Punto de entrada del login
// @Description  Con sesión redirige a /agency; sin sesión devuelve la URL de login del proveedor.
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  dto.SignInResponse
// @Success      307
// @Router       /agency/sign-in [get]
func (h *OnboardingHandler) SignIn(c *fiber.Ctx) error {
	if GetIdentity(c) != nil {
		return c.Redirect("/agency", fiber.StatusTemporaryRedirect)
	}
	return c.JSON(dto.SignInResponse{SignInURL: h.signInURL})
}

// Agency godoc
// @Summary      Aterrizaje de agencia
// @Description  Consume invitaciones pendientes y decide el destino: dashboard, billing, sub-cuentas o crear agencia.
// @Tags         onboarding
// @Produce      json
// @Param        plan   query  string  false  "Plan elegido"
// @Param        state  query  string  false  "{path}___{agencyId}"
// @Param        code   query  string  false  "Código OAuth"
// @Success      200  {object}  dto.LandingResponse
// @Success      307
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /agency [get]
func (h *OnboardingHandler) Agency(c *fiber.Ctx) error {
	l, err := h.uc.AgencyLanding(c.UserContext(), GetIdentity(c), landingQuery(c))
	return h.respond(c, l, err)
}

// SubAccount godoc
// @Summary      Aterrizaje de sub-cuenta
// @Tags         onboarding
// @Produce      json
// @Param        state  query  string  false  "{path}___{subaccountId}"
// @Param        code   query  string  false  "Código OAuth"
// @Success      307
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /subaccount [get]
func (h *OnboardingHandler) SubAccount(c *fiber.Ctx) error {
	l, err := h.uc.SubAccountLanding(c.UserContext(), GetIdentity(c), landingQuery(c))
	return h.respond(c, l, err)
}

func (h *OnboardingHandler) respond(c *fiber.Ctx, l provisioning.Landing, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.Redirect(h.signInURL, fiber.StatusTemporaryRedirect)
	case err != nil:
		return writeError(c, err)
	case l.Redirect != "":
		return c.Redirect(l.Redirect, fiber.StatusTemporaryRedirect)
	case l.NotAuthorized:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_AUTHORIZED", Message: "sin acceso a esta agencia"})
	}
	return c.JSON(dto.LandingResponse{CreateAgency: l.CreateAgency, CompanyEmail: l.CompanyEmail})
}

func landingQuery(c *fiber.Ctx) provisioning.LandingQuery {
	return provisioning.LandingQuery{
		Plan:  c.Query("plan"),
		State: c.Query("state"),
		Code:  c.Query("code"),
	}
}
