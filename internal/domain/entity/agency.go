package entity

import "time"

// Agency representa la raíz de tenant: agrupa sub-cuentas, usuarios y opciones de navegación.
type Agency struct {
	ID               string
	ConnectAccountID string
	CustomerID       string
	Name             string
	AgencyLogo       string
	CompanyEmail     string
	CompanyPhone     string
	WhiteLabel       bool
	Address          string
	City             string
	ZipCode          string
	State            string
	Country          string
	Goal             int
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Relaciones cargadas por la vista de detalle.
	SidebarOptions []SidebarOption
	SubAccounts    []SubAccount
	Subscription   *Subscription
}
