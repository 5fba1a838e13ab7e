package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/agency-api/internal/domain/entity"
	"github.com/jhoicas/agency-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo registro de actividad sobre PostgreSQL.
type NotificationRepo struct {
	db Querier
}

// NewNotificationRepository construye el adaptador del registro de actividad.
func NewNotificationRepository(db Querier) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// Create agrega una entrada.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notifications (id, message, agency_id, sub_account_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.Message, n.AgencyID, nullString(n.SubAccountID), n.UserID, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create notification: %w", mapPostgresError(err))
	}
	return nil
}

// ListByAgency lista las notificaciones de la agencia con su actor, más recientes primero.
func (r *NotificationRepo) ListByAgency(ctx context.Context, agencyID string) ([]*entity.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT n.id, n.message, n.agency_id, n.sub_account_id, n.user_id, n.created_at, n.updated_at,
			u.id, u.name, u.avatar_url, u.email, u.role, u.agency_id, u.created_at, u.updated_at
		FROM notifications n
		JOIN users u ON u.id = n.user_id
		WHERE n.agency_id = $1
		ORDER BY n.created_at DESC, n.id DESC`, agencyID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var list []*entity.Notification
	for rows.Next() {
		var (
			n            entity.Notification
			u            entity.User
			subAccountID *string
			userAgencyID *string
		)
		if err := rows.Scan(
			&n.ID, &n.Message, &n.AgencyID, &subAccountID, &n.UserID, &n.CreatedAt, &n.UpdatedAt,
			&u.ID, &u.Name, &u.AvatarURL, &u.Email, &u.Role, &userAgencyID, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.SubAccountID = derefString(subAccountID)
		u.AgencyID = derefString(userAgencyID)
		n.User = &u
		list = append(list, &n)
	}
	return list, rows.Err()
}
