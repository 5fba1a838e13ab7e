package entity

// Estados de una invitación.
const (
	InvitationPending  = "PENDING"
	InvitationAccepted = "ACCEPTED"
	InvitationRevoked  = "REVOKED"
)

// Invitation concesión de acceso pendiente, correlacionada por email.
// Se consume una sola vez: aceptarla la elimina.
type Invitation struct {
	ID       string
	Email    string
	AgencyID string
	Status   string
	Role     string
}
