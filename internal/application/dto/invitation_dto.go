package dto

import "github.com/jhoicas/agency-api/internal/domain/entity"

// SendInvitationRequest entrada de POST /api/agencies/:id/invitations.
type SendInvitationRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// InvitationResponse salida de una invitación.
type InvitationResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	AgencyID string `json:"agency_id"`
	Status   string `json:"status"`
	Role     string `json:"role"`
}

// NewInvitationResponse mapea la entidad.
func NewInvitationResponse(inv *entity.Invitation) InvitationResponse {
	return InvitationResponse{ID: inv.ID, Email: inv.Email, AgencyID: inv.AgencyID, Status: inv.Status, Role: inv.Role}
}
