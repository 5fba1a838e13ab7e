package repository

import (
	"context"

	"github.com/jhoicas/agency-api/internal/domain/entity"
)

// NotificationRepository define el puerto del registro de actividad.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// ListByAgency devuelve las notificaciones con su actor, más recientes primero.
	ListByAgency(ctx context.Context, agencyID string) ([]*entity.Notification, error)
}
