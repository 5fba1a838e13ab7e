package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agency-api/internal/application/dto"
	"github.com/jhoicas/agency-api/internal/application/provisioning"
)

// UserHandler maneja la sesión del usuario actual.
type UserHandler struct {
	uc *provisioning.TenantUseCase
}

// NewUserHandler construye el handler inyectando el caso de uso.
func NewUserHandler(uc *provisioning.TenantUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me godoc
// @Summary      Usuario actual con agencia y permisos
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserDetailsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.GetAuthUserDetails(c.UserContext(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no inicializado"})
	}
	return c.JSON(dto.NewUserDetailsResponse(user))
}

// Init godoc
// @Summary      Crear o actualizar el usuario local de la sesión
// @Description  Replica el rol en la metadata privada del proveedor de identidad.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.InitUserRequest  false  "Campos a aplicar"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users/init [post]
func (h *UserHandler) Init(c *fiber.Ctx) error {
	var in dto.InitUserRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	user, err := h.uc.InitUser(c.UserContext(), GetIdentity(c), provisioning.InitUserInput{
		Role:      in.Role,
		Name:      in.Name,
		AvatarURL: in.AvatarURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}
