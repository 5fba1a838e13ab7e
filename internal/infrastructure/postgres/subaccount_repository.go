package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/agency-api/internal/domain/entity"
	"github.com/jhoicas/agency-api/internal/domain/repository"
)

var _ repository.SubAccountRepository = (*SubAccountRepo)(nil)

const subAccountColumns = `id, connect_account_id, name, sub_account_logo, company_email, company_phone, goal,
	address, city, zip_code, state, country, agency_id, created_at, updated_at`

// SubAccountRepo implementación del puerto SubAccountRepository sobre PostgreSQL.
type SubAccountRepo struct {
	db Querier
}

// NewSubAccountRepository construye el adaptador de persistencia para sub-cuentas.
func NewSubAccountRepository(db Querier) *SubAccountRepo {
	return &SubAccountRepo{db: db}
}

// Upsert inserta o actualiza por ID. La agencia de una sub-cuenta existente no cambia.
func (r *SubAccountRepo) Upsert(ctx context.Context, s *entity.SubAccount) (bool, error) {
	query := `
		INSERT INTO sub_accounts (` + subAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			connect_account_id = EXCLUDED.connect_account_id,
			name               = EXCLUDED.name,
			sub_account_logo   = EXCLUDED.sub_account_logo,
			company_email      = EXCLUDED.company_email,
			company_phone      = EXCLUDED.company_phone,
			goal               = EXCLUDED.goal,
			address            = EXCLUDED.address,
			city               = EXCLUDED.city,
			zip_code           = EXCLUDED.zip_code,
			state              = EXCLUDED.state,
			country            = EXCLUDED.country,
			updated_at         = EXCLUDED.updated_at
		RETURNING created_at, (xmax = 0)`
	var created bool
	err := r.db.QueryRow(ctx, query,
		s.ID, s.ConnectAccountID, s.Name, s.SubAccountLogo, s.CompanyEmail, s.CompanyPhone, s.Goal,
		s.Address, s.City, s.ZipCode, s.State, s.Country, s.AgencyID, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.CreatedAt, &created)
	if err != nil {
		return false, fmt.Errorf("upsert sub account: %w", mapPostgresError(err))
	}
	return created, nil
}

// GetByID obtiene una sub-cuenta por ID, o (nil, nil).
func (r *SubAccountRepo) GetByID(ctx context.Context, id string) (*entity.SubAccount, error) {
	s, err := scanSubAccount(r.db.QueryRow(ctx, `SELECT `+subAccountColumns+` FROM sub_accounts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sub account: %w", mapPostgresError(err))
	}
	return s, nil
}

// CreatePermission concede (o niega) acceso a la sub-cuenta.
func (r *SubAccountRepo) CreatePermission(ctx context.Context, p *entity.Permission) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO permissions (id, email, sub_account_id, access) VALUES ($1, $2, $3, $4)`,
		p.ID, p.Email, p.SubAccountID, p.Access)
	if err != nil {
		return fmt.Errorf("create permission: %w", mapPostgresError(err))
	}
	return nil
}

// CreatePipeline crea un pipeline en la sub-cuenta.
func (r *SubAccountRepo) CreatePipeline(ctx context.Context, p *entity.Pipeline) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO pipelines (id, name, sub_account_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.SubAccountID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", mapPostgresError(err))
	}
	return nil
}

// CreateSidebarOptions inserta las opciones de navegación con COPY.
func (r *SubAccountRepo) CreateSidebarOptions(ctx context.Context, options []entity.SidebarOption) error {
	_, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"subaccount_sidebar_options"},
		[]string{"id", "name", "link", "icon", "sub_account_id", "created_at", "updated_at"},
		pgx.CopyFromSlice(len(options), func(i int) ([]any, error) {
			o := options[i]
			return []any{o.ID, o.Name, o.Link, o.Icon, o.SubAccountID, o.CreatedAt, o.UpdatedAt}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("create sub account sidebar options: %w", mapPostgresError(err))
	}
	return nil
}

func listSubAccounts(ctx context.Context, db Querier, agencyID string) ([]entity.SubAccount, error) {
	rows, err := db.Query(ctx,
		`SELECT `+subAccountColumns+` FROM sub_accounts WHERE agency_id = $1 ORDER BY created_at, id`, agencyID)
	if err != nil {
		return nil, fmt.Errorf("list sub accounts: %w", mapPostgresError(err))
	}
	defer rows.Close()
	var list []entity.SubAccount
	for rows.Next() {
		s, err := scanSubAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sub account: %w", err)
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}

func scanSubAccount(row pgx.Row) (*entity.SubAccount, error) {
	var s entity.SubAccount
	if err := row.Scan(
		&s.ID, &s.ConnectAccountID, &s.Name, &s.SubAccountLogo, &s.CompanyEmail, &s.CompanyPhone, &s.Goal,
		&s.Address, &s.City, &s.ZipCode, &s.State, &s.Country, &s.AgencyID, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
