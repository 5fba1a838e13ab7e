package provisioning_test

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/agency-api/internal/application/provisioning"
	"github.com/jhoicas/agency-api/internal/domain"
	"github.com/jhoicas/agency-api/internal/domain/entity"
	"github.com/jhoicas/agency-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria que implementa los puertos de repositorio
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu            sync.Mutex
	users         map[string]*entity.User // por email
	agencies      map[string]*entity.Agency
	subAccounts   map[string]*entity.SubAccount
	permissions   []entity.Permission
	pipelines     []entity.Pipeline
	agencySidebar []entity.SidebarOption
	subSidebar    []entity.SidebarOption
	invitations   map[string]*entity.Invitation // por email
	notifications []*entity.Notification
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[string]*entity.User{},
		agencies:    map[string]*entity.Agency{},
		subAccounts: map[string]*entity.SubAccount{},
		invitations: map[string]*entity.Invitation{},
	}
}

type memUsers struct{ s *memStore }
type memAgencies struct{ s *memStore }
type memSubAccounts struct{ s *memStore }
type memInvitations struct{ s *memStore }
type memNotifications struct{ s *memStore }

var (
	_ repository.UserRepository         = memUsers{}
	_ repository.AgencyRepository       = memAgencies{}
	_ repository.SubAccountRepository   = memSubAccounts{}
	_ repository.InvitationRepository   = memInvitations{}
	_ repository.NotificationRepository = memNotifications{}
)

func (r memUsers) Upsert(_ context.Context, u *entity.User) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.s.users[u.Email]; ok {
		existing.Name = u.Name
		existing.AvatarURL = u.AvatarURL
		existing.Role = u.Role
		if u.AgencyID != "" {
			existing.AgencyID = u.AgencyID
		}
		existing.UpdatedAt = u.UpdatedAt
		cp := *existing
		return &cp, nil
	}
	cp := *u
	r.s.users[u.Email] = &cp
	out := cp
	return &out, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) GetDetailsByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := r.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return u, err
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

func (r memUsers) FindAgencyOwner(_ context.Context, agencyID string) (*entity.User, error) {
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

func (r memUsers) FindFirstBySubAccount(_ context.Context, subAccountID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.subAccounts[subAccountID]
	if !ok {
		return nil, nil
	}
	emails := make([]string, 0, len(r.s.users))
	for e := range r.s.users {
		emails = append(emails, e)
	}
	sort.Strings(emails)
	for _, e := range emails {
		if r.s.users[e].AgencyID == sub.AgencyID {
			cp := *r.s.users[e]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memUsers) AssignAgency(_ context.Context, email, agencyID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.AgencyID = agencyID
	return nil
}

func (r memAgencies) Upsert(_ context.Context, a *entity.Agency) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, exists := r.s.agencies[a.ID]
	cp := *a
	r.s.agencies[a.ID] = &cp
	return !exists, nil
}

func (r memAgencies) GetByID(_ context.Context, id string) (*entity.Agency, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.agencies[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r memAgencies) Update(_ context.Context, a *entity.Agency) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.agencies[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	r.s.agencies[a.ID] = &cp
	return nil
}

func (r memAgencies) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.agencies[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.agencies, id)
	return nil
}

func (r memAgencies) CreateSidebarOptions(_ context.Context, options []entity.SidebarOption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.agencySidebar = append(r.s.agencySidebar, options...)
	return nil
}

func (r memSubAccounts) Upsert(_ context.Context, sub *entity.SubAccount) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, exists := r.s.subAccounts[sub.ID]
	cp := *sub
	r.s.subAccounts[sub.ID] = &cp
	return !exists, nil
}

func (r memSubAccounts) GetByID(_ context.Context, id string) (*entity.SubAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.subAccounts[id]
	if !ok {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}

func (r memSubAccounts) CreatePermission(_ context.Context, p *entity.Permission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.permissions = append(r.s.permissions, *p)
	return nil
}

func (r memSubAccounts) CreatePipeline(_ context.Context, p *entity.Pipeline) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.pipelines = append(r.s.pipelines, *p)
	return nil
}

func (r memSubAccounts) CreateSidebarOptions(_ context.Context, options []entity.SidebarOption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.subSidebar = append(r.s.subSidebar, options...)
	return nil
}

func (r memInvitations) Upsert(_ context.Context, inv *entity.Invitation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *inv
	r.s.invitations[inv.Email] = &cp
	return nil
}

func (r memInvitations) GetPendingByEmail(_ context.Context, email string) (*entity.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invitations[email]
	if !ok || inv.Status != entity.InvitationPending {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r memInvitations) DeleteByEmail(_ context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.invitations, email)
	return nil
}

func (r memNotifications) Create(_ context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *n
	r.s.notifications = append(r.s.notifications, &cp)
	return nil
}

func (r memNotifications) ListByAgency(_ context.Context, agencyID string) ([]*entity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Notification
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		if r.s.notifications[i].AgencyID == agencyID {
			cp := *r.s.notifications[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

// memTx ejecuta fn sobre el mismo almacén y descarta los cambios si fn falla.
type memTx struct{ s *memStore }

func (t memTx) RunTenant(ctx context.Context, fn func(repository.AgencyRepository, repository.SubAccountRepository, repository.UserRepository) error) error {
	snap := t.s.snapshot()
	if err := fn(memAgencies{t.s}, memSubAccounts{t.s}, memUsers{t.s}); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

type storeSnapshot struct {
	users         map[string]entity.User
	agencies      map[string]entity.Agency
	subAccounts   map[string]entity.SubAccount
	permissions   []entity.Permission
	pipelines     []entity.Pipeline
	agencySidebar []entity.SidebarOption
	subSidebar    []entity.SidebarOption
}

func (s *memStore) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := storeSnapshot{
		users:         map[string]entity.User{},
		agencies:      map[string]entity.Agency{},
		subAccounts:   map[string]entity.SubAccount{},
		permissions:   append([]entity.Permission(nil), s.permissions...),
		pipelines:     append([]entity.Pipeline(nil), s.pipelines...),
		agencySidebar: append([]entity.SidebarOption(nil), s.agencySidebar...),
		subSidebar:    append([]entity.SidebarOption(nil), s.subSidebar...),
	}
	for k, v := range s.users {
		snap.users[k] = *v
	}
	for k, v := range s.agencies {
		snap.agencies[k] = *v
	}
	for k, v := range s.subAccounts {
		snap.subAccounts[k] = *v
	}
	return snap
}

func (s *memStore) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = map[string]*entity.User{}
	for k, v := range snap.users {
		u := v
		s.users[k] = &u
	}
	s.agencies = map[string]*entity.Agency{}
	for k, v := range snap.agencies {
		a := v
		s.agencies[k] = &a
	}
	s.subAccounts = map[string]*entity.SubAccount{}
	for k, v := range snap.subAccounts {
		sub := v
		s.subAccounts[k] = &sub
	}
	s.permissions = snap.permissions
	s.pipelines = snap.pipelines
	s.agencySidebar = snap.agencySidebar
	s.subSidebar = snap.subSidebar
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedor de identidad falso
// ──────────────────────────────────────────────────────────────────────────────

type metadataCall struct {
	UserID   string
	Metadata map[string]any
}

type invitationCall struct {
	Email       string
	RedirectURL string
}

type fakeIdentityProvider struct {
	mu          sync.Mutex
	metadata    []metadataCall
	invitations []invitationCall
	err         error
}

func (f *fakeIdentityProvider) UpdatePrivateMetadata(_ context.Context, userID string, metadata map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.metadata = append(f.metadata, metadataCall{UserID: userID, Metadata: metadata})
	return nil
}

func (f *fakeIdentityProvider) CreateInvitation(_ context.Context, email, redirectURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.invitations = append(f.invitations, invitationCall{Email: email, RedirectURL: redirectURL})
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testRedirectURL = "https://app.example.com/agency"

var testNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store *memStore
	idp   *fakeIdentityProvider
	uc    *provisioning.TenantUseCase
}

func newFixture() *fixture {
	s := newMemStore()
	idp := &fakeIdentityProvider{}
	uc := provisioning.NewTenantUseCase(
		memTx{s},
		memUsers{s},
		memAgencies{s},
		memSubAccounts{s},
		memInvitations{s},
		memNotifications{s},
		idp,
		provisioning.Config{InvitationRedirectURL: testRedirectURL},
		zerolog.New(io.Discard),
	)
	provisioning.SetClock(uc, func() time.Time { return testNow })
	return &fixture{store: s, idp: idp, uc: uc}
}

func (f *fixture) seedUser(u entity.User) {
	f.store.users[u.Email] = &u
}

func (f *fixture) seedAgency(a entity.Agency) {
	f.store.agencies[a.ID] = &a
}

func identityFor(id, email, first, last string) *entity.Identity {
	return &entity.Identity{ID: id, Email: email, FirstName: first, LastName: last, ImageURL: "https://img/" + id}
}
