package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agency-api/internal/application/dto"
	"github.com/jhoicas/agency-api/internal/application/provisioning"
	"github.com/jhoicas/agency-api/internal/domain/entity"
)

// AgencyHandler maneja las peticiones HTTP para el recurso Agency.
type AgencyHandler struct {
	uc *provisioning.TenantUseCase
}

// NewAgencyHandler construye el handler inyectando el caso de uso.
func NewAgencyHandler(uc *provisioning.TenantUseCase) *AgencyHandler {
	return &AgencyHandler{uc: uc}
}

// Save godoc
// @Summary      Crear o actualizar agencia
// @Description  Sin id crea la agencia, hace dueño al usuario actual y siembra la navegación por defecto.
// @Tags         agencies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SaveAgencyRequest  true  "Datos de la agencia"
// @Success      200   {object}  dto.AgencyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/agencies [post]
func (h *AgencyHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveAgencyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.CompanyEmail) == "" {
		return validation(c, "name y company_email son requeridos")
	}
	out, err := h.uc.SaveAgency(c.UserContext(), GetIdentity(c), in.ToEntity(), entity.Plan(in.Plan))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return validation(c, "company_email es requerido")
	}
	return c.JSON(dto.NewAgencyResponse(out))
}

// Update godoc
// @Summary      Actualizar agencia parcialmente
// @Tags         agencies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID de la agencia"
// @Param        body  body  dto.UpdateAgencyRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.AgencyResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/agencies/{id} [patch]
func (h *AgencyHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateAgencyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateAgencyDetails(c.UserContext(), GetIdentity(c), id, provisioning.UpdateAgencyInput{
		Name:             in.Name,
		AgencyLogo:       in.AgencyLogo,
		CompanyEmail:     in.CompanyEmail,
		CompanyPhone:     in.CompanyPhone,
		WhiteLabel:       in.WhiteLabel,
		Address:          in.Address,
		City:             in.City,
		ZipCode:          in.ZipCode,
		State:            in.State,
		Country:          in.Country,
		Goal:             in.Goal,
		ConnectAccountID: in.ConnectAccountID,
		CustomerID:       in.CustomerID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewAgencyResponse(out))
}

// Delete godoc
// @Summary      Eliminar agencia
// @Description  Solo el dueño. Elimina en cascada sub-cuentas, usuarios y notificaciones.
// @Tags         agencies
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la agencia"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/agencies/{id} [delete]
func (h *AgencyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteAgency(c.UserContext(), GetIdentity(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Notifications godoc
// @Summary      Registro de actividad de la agencia
// @Tags         agencies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la agencia"
// @Success      200  {object}  dto.NotificationListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/agencies/{id}/notifications [get]
func (h *AgencyHandler) Notifications(c *fiber.Ctx) error {
	list, err := h.uc.GetNotificationAndUser(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewNotificationListResponse(list))
}

// Invite godoc
// @Summary      Invitar a un miembro del equipo
// @Tags         agencies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID de la agencia"
// @Param        body  body  dto.SendInvitationRequest  true  "Email y rol"
// @Success      201   {object}  dto.InvitationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/agencies/{id}/invitations [post]
func (h *AgencyHandler) Invite(c *fiber.Ctx) error {
	var in dto.SendInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || !entity.ValidRole(in.Role) {
		return validation(c, "email y un role válido son requeridos")
	}
	inv, err := h.uc.SendInvitation(c.UserContext(), GetIdentity(c), c.Params("id"), in.Email, in.Role)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewInvitationResponse(inv))
}
