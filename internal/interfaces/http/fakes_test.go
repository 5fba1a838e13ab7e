package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agency-api/internal/application/provisioning"
	"github.com/jhoicas/agency-api/internal/domain"
	"github.com/jhoicas/agency-api/internal/domain/entity"
	"github.com/jhoicas/agency-api/internal/domain/repository"
	"github.com/jhoicas/agency-api/internal/domain/routing"
	apphttp "github.com/jhoicas/agency-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/agency-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

type store struct {
	mu            sync.Mutex
	users         map[string]*entity.User // por email
	agencies      map[string]*entity.Agency
	subAccounts   map[string]*entity.SubAccount
	permissions   []entity.Permission
	invitations   map[string]*entity.Invitation
	notifications []*entity.Notification
	sidebar       int
	pipelines     int
}

func newStore() *store {
	return &store{
		users:       map[string]*entity.User{},
		agencies:    map[string]*entity.Agency{},
		subAccounts: map[string]*entity.SubAccount{},
		invitations: map[string]*entity.Invitation{},
	}
}

type users struct{ s *store }
type agencies struct{ s *store }
type subAccounts struct{ s *store }
type invitations struct{ s *store }
type notifications struct{ s *store }

var (
	_ repository.UserRepository         = users{}
	_ repository.AgencyRepository       = agencies{}
	_ repository.SubAccountRepository   = subAccounts{}
	_ repository.InvitationRepository   = invitations{}
	_ repository.NotificationRepository = notifications{}
	_ provisioning.TenantTxRunner       = txRunner{}
)

func (r users) Upsert(_ context.Context, u *entity.User) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if old, ok := r.s.users[u.Email]; ok && u.AgencyID == "" {
		u.AgencyID = old.AgencyID
	}
	cp := *u
	r.s.users[u.Email] = &cp
	out := cp
	return &out, nil
}

func (r users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r users) GetDetailsByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, _ := r.GetByEmail(ctx, email)
	if u == nil {
		return nil, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.agencies[u.AgencyID]; ok {
		cp := *a
		u.Agency = &cp
	}
	for _, p := range r.s.permissions {
		if p.Email == u.Email {
			u.Permissions = append(u.Permissions, p)
		}
	}
	return u, nil
}

func (r users) FindAgencyOwner(_ context.Context, agencyID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.AgencyID == agencyID && u.Role == entity.RoleAgencyOwner {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r users) FindFirstBySubAccount(_ context.Context, subAccountID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.subAccounts[subAccountID]
	if !ok {
		return nil, nil
	}
	for _, u := range r.s.users {
		if u.AgencyID == sub.AgencyID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r users) AssignAgency(_ context.Context, email, agencyID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.AgencyID = agencyID
	return nil
}

func (r agencies) Upsert(_ context.Context, a *entity.Agency) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, exists := r.s.agencies[a.ID]
	cp := *a
	r.s.agencies[a.ID] = &cp
	return !exists, nil
}

func (r agencies) GetByID(_ context.Context, id string) (*entity.Agency, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.agencies[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r agencies) Update(_ context.Context, a *entity.Agency) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.agencies[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	r.s.agencies[a.ID] = &cp
	return nil
}

func (r agencies) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.agencies[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.agencies, id)
	return nil
}

func (r agencies) CreateSidebarOptions(_ context.Context, options []entity.SidebarOption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sidebar += len(options)
	return nil
}

func (r subAccounts) Upsert(_ context.Context, sub *entity.SubAccount) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, exists := r.s.subAccounts[sub.ID]
	cp := *sub
	r.s.subAccounts[sub.ID] = &cp
	return !exists, nil
}

func (r subAccounts) GetByID(_ context.Context, id string) (*entity.SubAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sub, ok := r.s.subAccounts[id]; ok {
		cp := *sub
		return &cp, nil
	}
	return nil, nil
}

func (r subAccounts) CreatePermission(_ context.Context, p *entity.Permission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.permissions = append(r.s.permissions, *p)
	return nil
}

func (r subAccounts) CreatePipeline(context.Context, *entity.Pipeline) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.pipelines++
	return nil
}

func (r subAccounts) CreateSidebarOptions(_ context.Context, options []entity.SidebarOption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sidebar += len(options)
	return nil
}

func (r invitations) Upsert(_ context.Context, inv *entity.Invitation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *inv
	r.s.invitations[inv.Email] = &cp
	return nil
}

func (r invitations) GetPendingByEmail(_ context.Context, email string) (*entity.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if inv, ok := r.s.invitations[email]; ok && inv.Status == entity.InvitationPending {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}

func (r invitations) DeleteByEmail(_ context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.invitations, email)
	return nil
}

func (r notifications) Create(_ context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *n
	r.s.notifications = append(r.s.notifications, &cp)
	return nil
}

func (r notifications) ListByAgency(_ context.Context, agencyID string) ([]*entity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Notification
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		if n := r.s.notifications[i]; n.AgencyID == agencyID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

type txRunner struct{ s *store }

func (t txRunner) RunTenant(_ context.Context, fn func(repository.AgencyRepository, repository.SubAccountRepository, repository.UserRepository) error) error {
	return fn(agencies{t.s}, subAccounts{t.s}, users{t.s})
}

type identityProvider struct {
	mu          sync.Mutex
	invitations []string
}

func (p *identityProvider) UpdatePrivateMetadata(context.Context, string, map[string]any) error {
	return nil
}

func (p *identityProvider) CreateInvitation(_ context.Context, email, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invitations = append(p.invitations, email)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// App de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "agency-api-test"
	testExpMin    = 60
	testSignInURL = "/agency/sign-in"
)

type testEnv struct {
	app      *fiber.App
	store    *store
	provider *identityProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s := newStore()
	provider := &identityProvider{}
	uc := provisioning.NewTenantUseCase(
		txRunner{s}, users{s}, agencies{s}, subAccounts{s}, invitations{s}, notifications{s},
		provider, provisioning.Config{InvitationRedirectURL: "https://app.example.com/agency"}, zerolog.Nop(),
	)
	router, err := routing.NewHostRouter(routing.Config{BaseDomain: ".example.com", ProtectedRoutes: []string{"/api/(.*)"}})
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		TenantUC:   uc,
		HostRouter: router,
		JWTSecret:  testJWTSecret,
		SignInURL:  testSignInURL,
		Logger:     zerolog.Nop(),
	})
	return &testEnv{app: app, store: s, provider: provider}
}

func (e *testEnv) seedUser(u entity.User) {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	e.store.users[u.Email] = &u
}

func (e *testEnv) seedAgency(a entity.Agency) {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	e.store.agencies[a.ID] = &a
}

// tokenFor genera un Bearer token para la identidad indicada.
func tokenFor(t *testing.T, id, email, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: id},
		Email:            email,
		FirstName:        "Ana",
		LastName:         "Ruiz",
		Role:             role,
	}, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// do lanza la petición contra la app; body vacío = sin cuerpo.
func (e *testEnv) do(t *testing.T, method, target, auth, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}
