package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agency-api/internal/application/dto"
	"github.com/jhoicas/agency-api/internal/application/provisioning"
)

// SubAccountHandler maneja las peticiones HTTP para el recurso SubAccount.
type SubAccountHandler struct {
	uc *provisioning.TenantUseCase
}

// NewSubAccountHandler construye el handler inyectando el caso de uso.
func NewSubAccountHandler(uc *provisioning.TenantUseCase) *SubAccountHandler {
	return &SubAccountHandler{uc: uc}
}

// Save godoc
// @Summary      Crear o actualizar sub-cuenta
// @Description  Al crearla da acceso al dueño de la agencia, crea el pipeline "Lead Cycle" y la navegación por defecto.
// @Tags         subaccounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SaveSubAccountRequest  true  "Datos de la sub-cuenta"
// @Success      200   {object}  dto.SubAccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/subaccounts [post]
func (h *SubAccountHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveSubAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.AgencyID == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.CompanyEmail) == "" {
		return validation(c, "agency_id, name y company_email son requeridos")
	}
	out, err := h.uc.SaveSubAccount(c.UserContext(), GetIdentity(c), in.ToEntity())
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la agencia no tiene dueño"})
	}
	return c.JSON(dto.NewSubAccountResponse(out))
}
