package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan identifica un precio del proveedor de pagos (price id).
type Plan string

// Planes publicados en el catálogo.
const (
	PlanBasic     Plan = "price_1OYxkqFj9oKEERu1NyN5vJhz"
	PlanUnlimited Plan = "price_1OYxkqFj9oKEERu1KfJGWxgN"
)

// PlanInfo entrada del catálogo público de planes.
type PlanInfo struct {
	Plan        Plan
	Title       string
	Description string
	Price       decimal.Decimal // mensual, USD
}

// PlanCatalog catálogo mostrado en la página pública (/site).
func PlanCatalog() []PlanInfo {
	return []PlanInfo{
		{Plan: "", Title: "Starter", Description: "Perfect for trying out the platform", Price: decimal.Zero},
		{Plan: PlanBasic, Title: "Basic", Description: "For serious agency owners", Price: decimal.RequireFromString("49.00")},
		{Plan: PlanUnlimited, Title: "Unlimited Saas", Description: "The ultimate agency kit", Price: decimal.RequireFromString("199.00")},
	}
}

// Subscription suscripción activa de una agencia. La escribe la integración de pagos;
// aquí solo se lee.
type Subscription struct {
	ID                   string
	Plan                 Plan
	Price                decimal.Decimal
	Active               bool
	PriceID              string
	CustomerID           string
	CurrentPeriodEndDate time.Time
	SubscriptionID       string
	AgencyID             string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
