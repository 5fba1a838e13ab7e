package dto

import (
	"time"

	"github.com/jhoicas/agency-api/internal/domain/entity"
)

// CreateNotificationRequest entrada de POST /api/notifications.
type CreateNotificationRequest struct {
	AgencyID     string `json:"agency_id"`
	SubAccountID string `json:"subaccount_id"`
	Description  string `json:"description"`
}

// NotificationResponse entrada del registro de actividad con su actor.
type NotificationResponse struct {
	ID           string        `json:"id"`
	Message      string        `json:"message"`
	Actor        string        `json:"actor"`
	Description  string        `json:"description"`
	AgencyID     string        `json:"agency_id"`
	SubAccountID string        `json:"subaccount_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	User         *UserResponse `json:"user,omitempty"`
}

// NotificationListResponse listado de GET /api/agencies/:id/notifications.
type NotificationListResponse struct {
	Items []NotificationResponse `json:"items"`
}

// NewNotificationListResponse mapea el listado; separa actor y descripción del mensaje.
func NewNotificationListResponse(list []*entity.Notification) NotificationListResponse {
	out := NotificationListResponse{Items: make([]NotificationResponse, 0, len(list))}
	for _, n := range list {
		actor, desc := entity.ParseNotificationMessage(n.Message)
		item := NotificationResponse{
			ID:           n.ID,
			Message:      n.Message,
			Actor:        actor,
			Description:  desc,
			AgencyID:     n.AgencyID,
			SubAccountID: n.SubAccountID,
			CreatedAt:    n.CreatedAt,
		}
		if n.User != nil {
			u := NewUserResponse(n.User)
			item.User = &u
		}
		out.Items = append(out.Items, item)
	}
	return out
}
