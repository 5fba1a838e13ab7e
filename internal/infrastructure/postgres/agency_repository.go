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

var _ repository.AgencyRepository = (*AgencyRepo)(nil)

const agencyColumns = `id, connect_account_id, customer_id, name, agency_logo, company_email, company_phone,
	white_label, address, city, zip_code, state, country, goal, created_at, updated_at`

// AgencyRepo implementación del puerto AgencyRepository sobre PostgreSQL.
type AgencyRepo struct {
	db Querier
}

// NewAgencyRepository construye el adaptador de persistencia para agencias.
func NewAgencyRepository(db Querier) *AgencyRepo {
	return &AgencyRepo{db: db}
}

// Upsert inserta o actualiza por ID. xmax = 0 distingue la fila recién insertada.
func (r *AgencyRepo) Upsert(ctx context.Context, a *entity.Agency) (bool, error) {
	query := `
		INSERT INTO agencies (` + agencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			connect_account_id = EXCLUDED.connect_account_id,
			customer_id        = EXCLUDED.customer_id,
			name               = EXCLUDED.name,
			agency_logo        = EXCLUDED.agency_logo,
			company_email      = EXCLUDED.company_email,
			company_phone      = EXCLUDED.company_phone,
			white_label        = EXCLUDED.white_label,
			address            = EXCLUDED.address,
			city               = EXCLUDED.city,
			zip_code           = EXCLUDED.zip_code,
			state              = EXCLUDED.state,
			country            = EXCLUDED.country,
			goal               = EXCLUDED.goal,
			updated_at         = EXCLUDED.updated_at
		RETURNING created_at, (xmax = 0)`
	var created bool
	err := r.db.QueryRow(ctx, query,
		a.ID, a.ConnectAccountID, a.CustomerID, a.Name, a.AgencyLogo, a.CompanyEmail, a.CompanyPhone,
		a.WhiteLabel, a.Address, a.City, a.ZipCode, a.State, a.Country, a.Goal, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.CreatedAt, &created)
	if err != nil {
		return false, fmt.Errorf("upsert agency: %w", mapPostgresError(err))
	}
	return created, nil
}

// GetByID obtiene una agencia por ID, o (nil, nil).
func (r *AgencyRepo) GetByID(ctx context.Context, id string) (*entity.Agency, error) {
	a, err := getAgency(ctx, r.db, id)
	if err != nil {
		return nil, fmt.Errorf("get agency: %w", err)
	}
	return a, nil
}

// Update sobrescribe los campos editables de la agencia.
func (r *AgencyRepo) Update(ctx context.Context, a *entity.Agency) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE agencies SET
			connect_account_id = $2, customer_id = $3, name = $4, agency_logo = $5,
			company_email = $6, company_phone = $7, white_label = $8, address = $9,
			city = $10, zip_code = $11, state = $12, country = $13, goal = $14, updated_at = $15
		WHERE id = $1`,
		a.ID, a.ConnectAccountID, a.CustomerID, a.Name, a.AgencyLogo, a.CompanyEmail, a.CompanyPhone,
		a.WhiteLabel, a.Address, a.City, a.ZipCode, a.State, a.Country, a.Goal, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update agency: %w", mapPostgresError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la agencia; las FK en cascada limpian sus filas dependientes.
func (r *AgencyRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM agencies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete agency: %w", mapPostgresError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateSidebarOptions inserta las opciones de navegación con COPY.
func (r *AgencyRepo) CreateSidebarOptions(ctx context.Context, options []entity.SidebarOption) error {
	_, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"agency_sidebar_options"},
		[]string{"id", "name", "link", "icon", "agency_id", "created_at", "updated_at"},
		pgx.CopyFromSlice(len(options), func(i int) ([]any, error) {
			o := options[i]
			return []any{o.ID, o.Name, o.Link, o.Icon, o.AgencyID, o.CreatedAt, o.UpdatedAt}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("create agency sidebar options: %w", mapPostgresError(err))
	}
	return nil
}

func getAgency(ctx context.Context, db Querier, id string) (*entity.Agency, error) {
	var a entity.Agency
	err := db.QueryRow(ctx, `SELECT `+agencyColumns+` FROM agencies WHERE id = $1`, id).Scan(
		&a.ID, &a.ConnectAccountID, &a.CustomerID, &a.Name, &a.AgencyLogo, &a.CompanyEmail, &a.CompanyPhone,
		&a.WhiteLabel, &a.Address, &a.City, &a.ZipCode, &a.State, &a.Country, &a.Goal, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapPostgresError(err)
	}
	return &a, nil
}

// loadAgencyDetails carga la agencia con su navegación, sus sub-cuentas (con la navegación
// de cada una) y la suscripción, si existe.
func loadAgencyDetails(ctx context.Context, db Querier, id string) (*entity.Agency, error) {
	a, err := getAgency(ctx, db, id)
	if err != nil || a == nil {
		return a, err
	}
	if a.SidebarOptions, err = listSidebarOptions(ctx, db,
		`SELECT id, name, link, icon, agency_id, '', created_at, updated_at
		 FROM agency_sidebar_options WHERE agency_id = $1 ORDER BY created_at, id`, id); err != nil {
		return nil, err
	}
	if a.SubAccounts, err = listSubAccounts(ctx, db, id); err != nil {
		return nil, err
	}
	for i := range a.SubAccounts {
		if a.SubAccounts[i].SidebarOptions, err = listSidebarOptions(ctx, db,
			`SELECT id, name, link, icon, '', sub_account_id, created_at, updated_at
			 FROM subaccount_sidebar_options WHERE sub_account_id = $1 ORDER BY created_at, id`,
			a.SubAccounts[i].ID); err != nil {
			return nil, err
		}
	}
	if a.Subscription, err = getSubscription(ctx, db, id); err != nil {
		return nil, err
	}
	return a, nil
}

func listSidebarOptions(ctx context.Context, db Querier, query, ownerID string) ([]entity.SidebarOption, error) {
	rows, err := db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list sidebar options: %w", mapPostgresError(err))
	}
	defer rows.Close()
	var list []entity.SidebarOption
	for rows.Next() {
		var o entity.SidebarOption
		if err := rows.Scan(&o.ID, &o.Name, &o.Link, &o.Icon, &o.AgencyID, &o.SubAccountID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sidebar option: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func getSubscription(ctx context.Context, db Querier, agencyID string) (*entity.Subscription, error) {
	var (
		s    entity.Subscription
		plan *string
	)
	err := db.QueryRow(ctx, `
		SELECT id, plan, price, active, price_id, customer_id, current_period_end_date,
			subscription_id, agency_id, created_at, updated_at
		FROM subscriptions WHERE agency_id = $1`, agencyID,
	).Scan(&s.ID, &plan, &s.Price, &s.Active, &s.PriceID, &s.CustomerID, &s.CurrentPeriodEndDate,
		&s.SubscriptionID, &s.AgencyID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", mapPostgresError(err))
	}
	s.Plan = entity.Plan(derefString(plan))
	return &s, nil
}
