package entity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Identity es el principal emitido por el proveedor de identidad externo.
// No pertenece a este sistema: es de solo lectura y llega en el token de sesión.
type Identity struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	ImageURL  string
	Role      string // rol replicado en la metadata privada del proveedor
}

// FullName devuelve "{nombre} {apellido}" tal como se guarda en User.Name.
func (i *Identity) FullName() string {
	return i.FirstName + " " + i.LastName
}

var emailFolder = cases.Lower(language.Und)

// NormalizeEmail normaliza un email para usarlo como clave de correlación.
func NormalizeEmail(email string) string {
	return emailFolder.String(strings.TrimSpace(email))
}
