package entity

import (
	"fmt"
	"time"
)

// SidebarOption entrada de navegación asociada a una agencia o a una sub-cuenta.
// Exactamente uno de AgencyID / SubAccountID está definido.
type SidebarOption struct {
	ID           string
	Name         string
	Icon         string
	Link         string
	AgencyID     string
	SubAccountID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type sidebarTemplate struct {
	name string
	icon string
	path string // sufijo relativo a la raíz del tenant
}

var agencySidebar = []sidebarTemplate{
	{"Dashboard", "category", ""},
	{"Launchpad", "clipboardIcon", "/launchpad"},
	{"Billing", "payment", "/billing"},
	{"Settings", "settings", "/settings"},
	{"Sub Accounts", "person", "/all-subaccounts"},
	{"Team", "shield", "/team"},
}

var subAccountSidebar = []sidebarTemplate{
	{"Launchpad", "clipboardIcon", "/launchpad"},
	{"Settings", "settings", "/settings"},
	{"Funnels", "pipelines", "/funnels"},
	{"Media", "database", "/media"},
	{"Automations", "chip", "/automations"},
	{"Pipelines", "flag", "/pipelines"},
	{"Contacts", "person", "/contacts"},
	{"Dashboard", "category", ""},
}

// DefaultAgencySidebar devuelve las seis entradas que se siembran al crear una agencia.
// Los IDs los asigna la capa de persistencia.
func DefaultAgencySidebar(agencyID string) []SidebarOption {
	out := make([]SidebarOption, 0, len(agencySidebar))
	for _, t := range agencySidebar {
		out = append(out, SidebarOption{
			Name:     t.name,
			Icon:     t.icon,
			Link:     fmt.Sprintf("/agency/%s%s", agencyID, t.path),
			AgencyID: agencyID,
		})
	}
	return out
}

// DefaultSubAccountSidebar devuelve las ocho entradas de una sub-cuenta nueva.
func DefaultSubAccountSidebar(subAccountID string) []SidebarOption {
	out := make([]SidebarOption, 0, len(subAccountSidebar))
	for _, t := range subAccountSidebar {
		out = append(out, SidebarOption{
			Name:         t.name,
			Icon:         t.icon,
			Link:         fmt.Sprintf("/subaccount/%s%s", subAccountID, t.path),
			SubAccountID: subAccountID,
		})
	}
	return out
}
