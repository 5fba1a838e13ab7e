package entity

import "time"

// Roles válidos para User (coinciden con el enum "role" de la base de datos).
const (
	RoleAgencyOwner     = "AGENCY_OWNER"
	RoleAgencyAdmin     = "AGENCY_ADMIN"
	RoleSubAccountUser  = "SUBACCOUNT_USER"
	RoleSubAccountGuest = "SUBACCOUNT_GUEST"
)

// ValidRole informa si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAgencyOwner, RoleAgencyAdmin, RoleSubAccountUser, RoleSubAccountGuest:
		return true
	}
	return false
}

// IsAgencyRole informa si el rol administra la agencia (dueño o admin).
func IsAgencyRole(role string) bool {
	return role == RoleAgencyOwner || role == RoleAgencyAdmin
}

// IsSubAccountRole informa si el rol solo opera sub-cuentas.
func IsSubAccountRole(role string) bool {
	return role == RoleSubAccountUser || role == RoleSubAccountGuest
}

// User representa un usuario local. Se correlaciona con la identidad externa por email.
// AgencyID vacío = usuario aún sin agencia (primer ingreso, antes del onboarding).
type User struct {
	ID        string
	Name      string
	AvatarURL string
	Email     string
	Role      string
	AgencyID  string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Cargados solo por la vista de detalle (GetDetailsByEmail).
	Agency      *Agency
	Permissions []Permission
}
