package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/agency-api/internal/domain"
	"github.com/jhoicas/agency-api/internal/domain/entity"
	"github.com/jhoicas/agency-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, avatar_url, email, role, agency_id, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

// Upsert inserta o actualiza por email en una sola sentencia. Un agency_id vacío no
// desconecta al usuario de su agencia.
func (r *UserRepo) Upsert(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (id, name, avatar_url, email, role, agency_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (email) DO UPDATE SET
			name       = EXCLUDED.name,
			avatar_url = EXCLUDED.avatar_url,
			role       = EXCLUDED.role,
			agency_id  = COALESCE(EXCLUDED.agency_id, users.agency_id),
			updated_at = EXCLUDED.updated_at
		RETURNING ` + userColumns
	row := r.db.QueryRow(ctx, query,
		user.ID, user.Name, user.AvatarURL, user.Email, user.Role, nullString(user.AgencyID),
		user.CreatedAt, user.UpdatedAt,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", mapPostgresError(err))
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetDetailsByEmail carga el usuario con su agencia (navegación, sub-cuentas y suscripción)
// y sus permisos.
func (r *UserRepo) GetDetailsByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := r.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return u, err
	}
	if u.AgencyID != "" {
		agency, err := loadAgencyDetails(ctx, r.db, u.AgencyID)
		if err != nil {
			return nil, err
		}
		u.Agency = agency
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, email, sub_account_id, access FROM permissions WHERE email = $1 ORDER BY id`, u.Email)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", mapPostgresError(err))
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(&p.ID, &p.Email, &p.SubAccountID, &p.Access); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		u.Permissions = append(u.Permissions, p)
	}
	return u, rows.Err()
}

// FindAgencyOwner devuelve el AGENCY_OWNER de la agencia, o (nil, nil).
func (r *UserRepo) FindAgencyOwner(ctx context.Context, agencyID string) (*entity.User, error) {
	return r.findOne(ctx, "find agency owner", `
		SELECT `+userColumns+` FROM users
		WHERE agency_id = $1 AND role = $2
		ORDER BY created_at LIMIT 1`, agencyID, entity.RoleAgencyOwner)
}

// FindFirstBySubAccount devuelve el usuario más antiguo de la agencia dueña de la sub-cuenta.
func (r *UserRepo) FindFirstBySubAccount(ctx context.Context, subAccountID string) (*entity.User, error) {
	return r.findOne(ctx, "find user by sub account", `
		SELECT u.id, u.name, u.avatar_url, u.email, u.role, u.agency_id, u.created_at, u.updated_at
		FROM users u
		JOIN sub_accounts s ON s.agency_id = u.agency_id
		WHERE s.id = $1
		ORDER BY u.created_at LIMIT 1`, subAccountID)
}

// AssignAgency conecta el usuario del email a la agencia.
func (r *UserRepo) AssignAgency(ctx context.Context, email, agencyID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET agency_id = $2, updated_at = now() WHERE email = $1`, email, agencyID)
	if err != nil {
		return fmt.Errorf("assign agency: %w", mapPostgresError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) findOne(ctx context.Context, op, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, mapPostgresError(err))
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u        entity.User
		agencyID *string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.AvatarURL, &u.Email, &u.Role, &agencyID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.AgencyID = derefString(agencyID)
	return &u, nil
}
