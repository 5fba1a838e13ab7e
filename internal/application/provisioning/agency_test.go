package provisioning_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agency-api/internal/application/provisioning"
	"github.com/jhoicas/agency-api/internal/domain"
	"github.com/jhoicas/agency-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// UpsertAgency
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsertAgency_SinEmailNoEscribe(t *testing.T) {
	f := newFixture()

	a, err := f.uc.UpsertAgency(context.Background(), &entity.Agency{ID: "AG1", Name: "Acme"}, entity.PlanBasic)
	require.NoError(t, err)
	assert.Nil(t, a)
	assert.Empty(t, f.store.agencies)
	assert.Empty(t, f.store.agencySidebar)
}

func TestUpsertAgency_CreaYSiembraNavegacion(t *testing.T) {
	f := newFixture()
	f.seedUser(entity.User{ID: "U1", Email: "owner@x.com", Role: entity.RoleAgencyOwner})

	a, err := f.uc.UpsertAgency(context.Background(), &entity.Agency{ID: "AG1", Name: "Acme", CompanyEmail: "Owner@X.com"}, "")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, testNow, a.CreatedAt)

	assert.Equal(t, "AG1", f.store.users["owner@x.com"].AgencyID, "el dueño queda conectado")
	require.Len(t, f.store.agencySidebar, 6)
	names := make([]string, 0, 6)
	for _, o := range f.store.agencySidebar {
		names = append(names, o.Name)
		assert.NotEmpty(t, o.ID)
		assert.Equal(t, "AG1", o.AgencyID)
	}
	assert.Equal(t, []string{"Dashboard", "Launchpad", "Billing", "Settings", "Sub Accounts", "Team"}, names)
	assert.Equal(t, "/agency/AG1", f.store.agencySidebar[0].Link)
}

func TestUpsertAgency_ActualizacionNoResiembra(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedUser(entity.User{ID: "U1", Email: "owner@x.com", Role: entity.RoleAgencyOwner})

	_, err := f.uc.UpsertAgency(ctx, &entity.Agency{ID: "AG1", Name: "Acme", CompanyEmail: "owner@x.com"}, "")
	require.NoError(t, err)
	_, err = f.uc.UpsertAgency(ctx, &entity.Agency{ID: "AG1", Name: "Acme 2", CompanyEmail: "owner@x.com"}, "")
	require.NoError(t, err)

	assert.Len(t, f.store.agencySidebar, 6)
	assert.Equal(t, "Acme 2", f.store.agencies["AG1"].Name)
}

func TestUpsertAgency_SinUsuarioDelEmailRevierte(t *testing.T) {
	f := newFixture()

	_, err := f.uc.UpsertAgency(context.Background(), &entity.Agency{ID: "AG1", CompanyEmail: "nobody@x.com"}, "")
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
	assert.Empty(t, f.store.agencies, "la transacción se revierte")
	assert.Empty(t, f.store.agencySidebar)
}

func TestUpsertAgency_GeneraID(t *testing.T) {
	f := newFixture()
	f.seedUser(entity.User{ID: "U1", Email: "owner@x.com"})

	a, err := f.uc.UpsertAgency(context.Background(), &entity.Agency{CompanyEmail: "owner@x.com"}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// SaveAgency / UpdateAgencyDetails / DeleteAgency
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveAgency_NuevaInicializaDueno(t *testing.T) {
	f := newFixture()
	id := identityFor("U1", "owner@x.com", "Olga", "Sun")

	a, err := f.uc.SaveAgency(context.Background(), id, &entity.Agency{ID: "AG1", Name: "Acme", CompanyEmail: "owner@x.com"}, entity.PlanUnlimited)
	require.NoError(t, err)
	require.NotNil(t, a)

	u := f.store.users["owner@x.com"]
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAgencyOwner, u.Role)
	assert.Equal(t, "AG1", u.AgencyID)
	require.Len(t, f.idp.metadata, 1)
	assert.Equal(t, map[string]any{"role": entity.RoleAgencyOwner}, f.idp.metadata[0].Metadata)
}

func TestSaveAgency_ExistenteExigeMiembro(t *testing.T) {
	f := newFixture()
	f.seedAgency(entity.Agency{ID: "AG1", CompanyEmail: "owner@x.com"})
	f.seedUser(entity.User{ID: "U2", Email: "other@x.com", Role: entity.RoleAgencyOwner, AgencyID: "AG2"})

	_, err := f.uc.SaveAgency(context.Background(), identityFor("U2", "other@x.com", "O", "T"),
		&entity.Agency{ID: "AG1", Name: "Hijack", CompanyEmail: "other@x.com"}, "")
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.Equal(t, "", f.store.agencies["AG1"].Name)
}

func TestUpdateAgencyDetails_Parcial(t *testing.T) {
	f := newFixture()
	f.seedAgency(entity.Agency{ID: "AG1", Name: "Acme", City: "Bogotá", CompanyEmail: "owner@x.com"})
	f.seedUser(entity.User{ID: "U1", Email: "admin@x.com", Role: entity.RoleAgencyAdmin, AgencyID: "AG1"})

	name := "Acme Corp"
	goal := 10
	a, err := f.uc.UpdateAgencyDetails(context.Background(), identityFor("U1", "admin@x.com", "A", "D"), "AG1",
		provisioning.UpdateAgencyInput{Name: &name, Goal: &goal})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", a.Name)
	assert.Equal(t, 10, a.Goal)
	assert.Equal(t, "Bogotá", a.City, "los campos nil no cambian")
}

func TestDeleteAgency_SoloDueno(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedAgency(entity.Agency{ID: "AG1", CompanyEmail: "owner@x.com"})
	f.seedUser(entity.User{ID: "U1", Email: "admin@x.com", Role: entity.RoleAgencyAdmin, AgencyID: "AG1"})
	f.seedUser(entity.User{ID: "U2", Email: "owner@x.com", Role: entity.RoleAgencyOwner, AgencyID: "AG1"})

	err := f.uc.DeleteAgency(ctx, identityFor("U1", "admin@x.com", "A", "D"), "AG1")
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	require.NoError(t, f.uc.DeleteAgency(ctx, identityFor("U2", "owner@x.com", "O", "W"), "AG1"))
	assert.Empty(t, f.store.agencies)
}

// ──────────────────────────────────────────────────────────────────────────────
// InitUser / GetAuthUserDetails
// ──────────────────────────────────────────────────────────────────────────────

func TestInitUser_CreaConRolPorDefecto(t *testing.T) {
	f := newFixture()

	u, err := f.uc.InitUser(context.Background(), identityFor("U1", "New@x.com", "Nia", "Kay"), provisioning.InitUserInput{})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "new@x.com", u.Email)
	assert.Equal(t, "Nia Kay", u.Name)
	assert.Equal(t, entity.RoleSubAccountUser, u.Role)
	require.Len(t, f.idp.metadata, 1)
	assert.Equal(t, map[string]any{"role": entity.RoleSubAccountUser}, f.idp.metadata[0].Metadata)
}

func TestInitUser_ActualizaCamposIndicados(t *testing.T) {
	f := newFixture()
	f.seedUser(entity.User{ID: "U1", Email: "a@x.com", Name: "Old", AvatarURL: "old.png", Role: entity.RoleSubAccountUser})

	u, err := f.uc.InitUser(context.Background(), identityFor("U1", "a@x.com", "A", "B"),
		provisioning.InitUserInput{Role: entity.RoleAgencyOwner, Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", u.Name)
	assert.Equal(t, "old.png", u.AvatarURL)
	assert.Equal(t, entity.RoleAgencyOwner, u.Role)
}

func TestInitUser_RolInvalido(t *testing.T) {
	f := newFixture()
	_, err := f.uc.InitUser(context.Background(), identityFor("U1", "a@x.com", "A", "B"), provisioning.InitUserInput{Role: "GOD"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, f.store.users)
}

func TestInitUser_SinIdentidad(t *testing.T) {
	f := newFixture()
	u, err := f.uc.InitUser(context.Background(), nil, provisioning.InitUserInput{})
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestGetAuthUserDetails_CargaAgenciaYPermisos(t *testing.T) {
	f := newFixture()
	f.seedAgency(entity.Agency{ID: "AG1", Name: "Acme"})
	f.seedUser(entity.User{ID: "U1", Email: "a@x.com", AgencyID: "AG1"})
	f.store.permissions = []entity.Permission{{ID: "P1", Email: "a@x.com", SubAccountID: "S1", Access: true}}

	u, err := f.uc.GetAuthUserDetails(context.Background(), identityFor("U1", "A@x.com", "A", "B"))
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotNil(t, u.Agency)
	assert.Equal(t, "Acme", u.Agency.Name)
	assert.Len(t, u.Permissions, 1)

	none, err := f.uc.GetAuthUserDetails(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}
