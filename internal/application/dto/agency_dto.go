package dto

import (
	"time"

	"github.com/jhoicas/agency-api/internal/domain/entity"
)

// SaveAgencyRequest entrada de POST /api/agencies (crear o actualizar por ID).
type SaveAgencyRequest struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	AgencyLogo       string `json:"agency_logo"`
	CompanyEmail     string `json:"company_email"`
	CompanyPhone     string `json:"company_phone"`
	WhiteLabel       *bool  `json:"white_label"`
	Address          string `json:"address"`
	City             string `json:"city"`
	ZipCode          string `json:"zip_code"`
	State            string `json:"state"`
	Country          string `json:"country"`
	Goal             int    `json:"goal"`
	ConnectAccountID string `json:"connect_account_id"`
	CustomerID       string `json:"customer_id"`
	Plan             string `json:"plan"`
}

// ToEntity construye la agencia. white_label ausente = true; goal 0 = 5.
func (r SaveAgencyRequest) ToEntity() *entity.Agency {
	whiteLabel := true
	if r.WhiteLabel != nil {
		whiteLabel = *r.WhiteLabel
	}
	goal := r.Goal
	if goal == 0 {
		goal = 5
	}
	return &entity.Agency{
		ID:               r.ID,
		ConnectAccountID: r.ConnectAccountID,
		CustomerID:       r.CustomerID,
		Name:             r.Name,
		AgencyLogo:       r.AgencyLogo,
		CompanyEmail:     r.CompanyEmail,
		CompanyPhone:     r.CompanyPhone,
		WhiteLabel:       whiteLabel,
		Address:          r.Address,
		City:             r.City,
		ZipCode:          r.ZipCode,
		State:            r.State,
		Country:          r.Country,
		Goal:             goal,
	}
}

// UpdateAgencyRequest entrada de PATCH /api/agencies/:id (campos nil = sin cambio).
type UpdateAgencyRequest struct {
	Name             *string `json:"name"`
	AgencyLogo       *string `json:"agency_logo"`
	CompanyEmail     *string `json:"company_email"`
	CompanyPhone     *string `json:"company_phone"`
	WhiteLabel       *bool   `json:"white_label"`
	Address          *string `json:"address"`
	City             *string `json:"city"`
	ZipCode          *string `json:"zip_code"`
	State            *string `json:"state"`
	Country          *string `json:"country"`
	Goal             *int    `json:"goal"`
	ConnectAccountID *string `json:"connect_account_id"`
	CustomerID       *string `json:"customer_id"`
}

// SidebarOptionResponse entrada de navegación.
type SidebarOptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	Link string `json:"link"`
}

// SubscriptionResponse suscripción activa de la agencia.
type SubscriptionResponse struct {
	Plan                 string    `json:"plan"`
	Price                string    `json:"price"`
	Active               bool      `json:"active"`
	CurrentPeriodEndDate time.Time `json:"current_period_end_date"`
}

// AgencyResponse salida de una agencia.
type AgencyResponse struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	AgencyLogo     string                  `json:"agency_logo"`
	CompanyEmail   string                  `json:"company_email"`
	CompanyPhone   string                  `json:"company_phone"`
	WhiteLabel     bool                    `json:"white_label"`
	Address        string                  `json:"address"`
	City           string                  `json:"city"`
	ZipCode        string                  `json:"zip_code"`
	State          string                  `json:"state"`
	Country        string                  `json:"country"`
	Goal           int                     `json:"goal"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
	SidebarOptions []SidebarOptionResponse `json:"sidebar_options,omitempty"`
	SubAccounts    []SubAccountResponse    `json:"sub_accounts,omitempty"`
	Subscription   *SubscriptionResponse   `json:"subscription,omitempty"`
}

// NewAgencyResponse mapea la entidad (con las relaciones que traiga cargadas).
func NewAgencyResponse(a *entity.Agency) AgencyResponse {
	out := AgencyResponse{
		ID:             a.ID,
		Name:           a.Name,
		AgencyLogo:     a.AgencyLogo,
		CompanyEmail:   a.CompanyEmail,
		CompanyPhone:   a.CompanyPhone,
		WhiteLabel:     a.WhiteLabel,
		Address:        a.Address,
		City:           a.City,
		ZipCode:        a.ZipCode,
		State:          a.State,
		Country:        a.Country,
		Goal:           a.Goal,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		SidebarOptions: newSidebarOptions(a.SidebarOptions),
	}
	for i := range a.SubAccounts {
		out.SubAccounts = append(out.SubAccounts, NewSubAccountResponse(&a.SubAccounts[i]))
	}
	if s := a.Subscription; s != nil {
		out.Subscription = &SubscriptionResponse{
			Plan:                 string(s.Plan),
			Price:                s.Price.StringFixed(2),
			Active:               s.Active,
			CurrentPeriodEndDate: s.CurrentPeriodEndDate,
		}
	}
	return out
}

func newSidebarOptions(options []entity.SidebarOption) []SidebarOptionResponse {
	if len(options) == 0 {
		return nil
	}
	out := make([]SidebarOptionResponse, 0, len(options))
	for _, o := range options {
		out = append(out, SidebarOptionResponse{ID: o.ID, Name: o.Name, Icon: o.Icon, Link: o.Link})
	}
	return out
}
