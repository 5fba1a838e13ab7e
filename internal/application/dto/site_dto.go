package dto

import "github.com/jhoicas/agency-api/internal/domain/entity"

// PlanResponse entrada del catálogo público.
type PlanResponse struct {
	PriceID     string `json:"price_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"` // USD mensual, dos decimales
}

// SiteResponse salida de GET /site.
type SiteResponse struct {
	Plans []PlanResponse `json:"plans"`
}

// NewSiteResponse mapea el catálogo de planes.
func NewSiteResponse(plans []entity.PlanInfo) SiteResponse {
	out := SiteResponse{Plans: make([]PlanResponse, 0, len(plans))}
	for _, p := range plans {
		out.Plans = append(out.Plans, PlanResponse{
			PriceID:     string(p.Plan),
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price.StringFixed(2),
		})
	}
	return out
}

// TenantSiteResponse salida de la ruta de sitio de tenant (destino de los rewrites por subdominio).
type TenantSiteResponse struct {
	Domain string `json:"domain"`
	Path   string `json:"path"`
}

// LandingResponse salida de /agency y /subaccount cuando no hay redirección.
type LandingResponse struct {
	CreateAgency bool   `json:"create_agency"`
	CompanyEmail string `json:"company_email,omitempty"`
}

// SignInResponse salida de /agency/sign-in.
type SignInResponse struct {
	SignInURL string `json:"sign_in_url"`
}
