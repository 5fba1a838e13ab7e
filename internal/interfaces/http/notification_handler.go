package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agency-api/internal/application/dto"
	"github.com/jhoicas/agency-api/internal/application/provisioning"
)

// NotificationHandler escribe entradas del registro de actividad.
type NotificationHandler struct {
	uc *provisioning.TenantUseCase
}

// NewNotificationHandler construye el handler inyectando el caso de uso.
func NewNotificationHandler(uc *provisioning.TenantUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar actividad
// @Description  Requiere agency_id o subaccount_id; con solo la sub-cuenta se usa su agencia.
// @Tags         notifications
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  dto.CreateNotificationRequest  true  "Actividad"
// @Success      201
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/notifications [post]
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Description == "" {
		return validation(c, "description es requerida")
	}
	err := h.uc.SaveActivityLogsNotification(c.UserContext(), GetIdentity(c), provisioning.ActivityLogInput{
		AgencyID:     in.AgencyID,
		Description:  in.Description,
		SubAccountID: in.SubAccountID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}
