package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/agency-api/internal/domain/entity"
	"github.com/jhoicas/agency-api/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

// InvitationRepo implementación del puerto InvitationRepository sobre PostgreSQL.
type InvitationRepo struct {
	db Querier
}

// NewInvitationRepository construye el adaptador de persistencia para invitaciones.
func NewInvitationRepository(db Querier) *InvitationRepo {
	return &InvitationRepo{db: db}
}

// Upsert crea la invitación o reemplaza agencia, rol y estado de la existente del email.
func (r *InvitationRepo) Upsert(ctx context.Context, inv *entity.Invitation) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO invitations (id, email, agency_id, status, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET
			agency_id = EXCLUDED.agency_id,
			status    = EXCLUDED.status,
			role      = EXCLUDED.role
		RETURNING id`,
		inv.ID, inv.Email, inv.AgencyID, inv.Status, inv.Role,
	).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("upsert invitation: %w", mapPostgresError(err))
	}
	return nil
}

// GetPendingByEmail devuelve la invitación PENDING del email, o (nil, nil).
func (r *InvitationRepo) GetPendingByEmail(ctx context.Context, email string) (*entity.Invitation, error) {
	var inv entity.Invitation
	err := r.db.QueryRow(ctx, `
		SELECT id, email, agency_id, status, role FROM invitations
		WHERE email = $1 AND status = $2`, email, entity.InvitationPending,
	).Scan(&inv.ID, &inv.Email, &inv.AgencyID, &inv.Status, &inv.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pending invitation: %w", mapPostgresError(err))
	}
	return &inv, nil
}

// DeleteByEmail elimina la invitación del email (no falla si no existe).
func (r *InvitationRepo) DeleteByEmail(ctx context.Context, email string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM invitations WHERE email = $1`, email); err != nil {
		return fmt.Errorf("delete invitation: %w", mapPostgresError(err))
	}
	return nil
}
