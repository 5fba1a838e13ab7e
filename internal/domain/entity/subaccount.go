package entity

import "time"

// SubAccount es un tenant hijo de una Agency.
type SubAccount struct {
	ID               string
	ConnectAccountID string
	Name             string
	SubAccountLogo   string
	CompanyEmail     string
	CompanyPhone     string
	Goal             int
	Address          string
	City             string
	ZipCode          string
	State            string
	Country          string
	AgencyID         string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	SidebarOptions []SidebarOption
}

// Permission concede (o niega) a un email el acceso a una sub-cuenta.
type Permission struct {
	ID           string
	Email        string
	SubAccountID string
	Access       bool
}

// Pipeline contenedor de un proceso de ventas dentro de una sub-cuenta.
type Pipeline struct {
	ID           string
	Name         string
	SubAccountID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultPipelineName nombre del pipeline que se siembra al crear una sub-cuenta.
const DefaultPipelineName = "Lead Cycle"
