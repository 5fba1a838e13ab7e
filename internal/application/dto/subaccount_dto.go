package dto

import (
	"time"

	"github.com/jhoicas/agency-api/internal/domain/entity"
)

// SaveSubAccountRequest entrada de POST /api/subaccounts.
type SaveSubAccountRequest struct {
	ID               string `json:"id"`
	AgencyID         string `json:"agency_id"`
	Name             string `json:"name"`
	SubAccountLogo   string `json:"subaccount_logo"`
	CompanyEmail     string `json:"company_email"`
	CompanyPhone     string `json:"company_phone"`
	Goal             int    `json:"goal"`
	Address          string `json:"address"`
	City             string `json:"city"`
	ZipCode          string `json:"zip_code"`
	State            string `json:"state"`
	Country          string `json:"country"`
	ConnectAccountID string `json:"connect_account_id"`
}

// ToEntity construye la sub-cuenta. goal 0 = 5.
func (r SaveSubAccountRequest) ToEntity() *entity.SubAccount {
	goal := r.Goal
	if goal == 0 {
		goal = 5
	}
	return &entity.SubAccount{
		ID:               r.ID,
		ConnectAccountID: r.ConnectAccountID,
		Name:             r.Name,
		SubAccountLogo:   r.SubAccountLogo,
		CompanyEmail:     r.CompanyEmail,
		CompanyPhone:     r.CompanyPhone,
		Goal:             goal,
		Address:          r.Address,
		City:             r.City,
		ZipCode:          r.ZipCode,
		State:            r.State,
		Country:          r.Country,
		AgencyID:         r.AgencyID,
	}
}

// SubAccountResponse salida de una sub-cuenta.
type SubAccountResponse struct {
	ID             string                  `json:"id"`
	AgencyID       string                  `json:"agency_id"`
	Name           string                  `json:"name"`
	SubAccountLogo string                  `json:"subaccount_logo"`
	CompanyEmail   string                  `json:"company_email"`
	CompanyPhone   string                  `json:"company_phone"`
	Goal           int                     `json:"goal"`
	Address        string                  `json:"address"`
	City           string                  `json:"city"`
	ZipCode        string                  `json:"zip_code"`
	State          string                  `json:"state"`
	Country        string                  `json:"country"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
	SidebarOptions []SidebarOptionResponse `json:"sidebar_options,omitempty"`
}

// NewSubAccountResponse mapea la entidad.
func NewSubAccountResponse(s *entity.SubAccount) SubAccountResponse {
	return SubAccountResponse{
		ID:             s.ID,
		AgencyID:       s.AgencyID,
		Name:           s.Name,
		SubAccountLogo: s.SubAccountLogo,
		CompanyEmail:   s.CompanyEmail,
		CompanyPhone:   s.CompanyPhone,
		Goal:           s.Goal,
		Address:        s.Address,
		City:           s.City,
		ZipCode:        s.ZipCode,
		State:          s.State,
		Country:        s.Country,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		SidebarOptions: newSidebarOptions(s.SidebarOptions),
	}
}
