package dto

import (
	"time"

	"github.com/jhoicas/agency-api/internal/domain/entity"
)

// InitUserRequest entrada de POST /api/users/init. Campos vacíos = sin cambio.
type InitUserRequest struct {
	Role      string `json:"role"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	AgencyID  string    `json:"agency_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PermissionResponse acceso de un usuario a una sub-cuenta.
type PermissionResponse struct {
	ID           string `json:"id"`
	SubAccountID string `json:"subaccount_id"`
	Access       bool   `json:"access"`
}

// UserDetailsResponse salida de GET /api/me.
type UserDetailsResponse struct {
	UserResponse
	Agency      *AgencyResponse      `json:"agency,omitempty"`
	Permissions []PermissionResponse `json:"permissions"`
}

// NewUserResponse mapea la entidad a la salida HTTP.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Email:     u.Email,
		Role:      u.Role,
		AgencyID:  u.AgencyID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserDetailsResponse incluye agencia y permisos.
func NewUserDetailsResponse(u *entity.User) UserDetailsResponse {
	out := UserDetailsResponse{
		UserResponse: NewUserResponse(u),
		Permissions:  make([]PermissionResponse, 0, len(u.Permissions)),
	}
	if u.Agency != nil {
		a := NewAgencyResponse(u.Agency)
		out.Agency = &a
	}
	for _, p := range u.Permissions {
		out.Permissions = append(out.Permissions, PermissionResponse{ID: p.ID, SubAccountID: p.SubAccountID, Access: p.Access})
	}
	return out
}
