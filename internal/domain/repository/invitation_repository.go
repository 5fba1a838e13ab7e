package repository

import (
	"context"

	"github.com/jhoicas/agency-api/internal/domain/entity"
)

// InvitationRepository define el puerto de persistencia para Invitation.
type InvitationRepository interface {
	// Upsert crea la invitación o reemplaza la existente para el mismo email.
	Upsert(ctx context.Context, inv *entity.Invitation) error
	// GetPendingByEmail devuelve la invitación PENDING del email, o (nil, nil).
	GetPendingByEmail(ctx context.Context, email string) (*entity.Invitation, error)
	DeleteByEmail(ctx context.Context, email string) error
}
