package entity

import (
	"strings"
	"time"
)

// Notification entrada del registro de actividad (append-only).
type Notification struct {
	ID           string
	Message      string
	AgencyID     string
	SubAccountID string // vacío si la actividad es de la agencia
	UserID       string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User *User // actor, cargado por el listado
}

// NotificationSeparator separa el nombre del actor de la descripción.
const NotificationSeparator = " | "

// FormatNotificationMessage construye "{actor} | {descripción}".
func FormatNotificationMessage(actorName, description string) string {
	return actorName + NotificationSeparator + description
}

// ParseNotificationMessage separa actor y descripción. Acepta también la variante
// histórica "{actor}| {descripción}" guardada sin espacio previo al separador.
func ParseNotificationMessage(message string) (actor, description string) {
	before, after, ok := strings.Cut(message, "|")
	if !ok {
		return "", strings.TrimSpace(message)
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}
