package commands

import (
	"context"
	"fmt"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/jhoicas/agency-api/pkg/jwt"
)

// TokenCmd emite un token como el del proveedor de identidad, para desarrollo y pruebas manuales.
type TokenCmd struct {
	Subject    string `help:"ID de la identidad" required:""`
	Email      string `help:"Email de la identidad" required:""`
	FirstName  string `help:"Nombre"`
	LastName   string `help:"Apellido"`
	Role       string `help:"Rol en la metadata privada"`
	TTL        int    `help:"Vida del token en minutos" default:"60"`
	Issuer     string `help:"Emisor" default:"agency-api" env:"JWT_ISSUER"`
	SigningKey string `help:"Secreto HS256" required:"" env:"JWT_SECRET"`
}

func (t *TokenCmd) Run(ctx context.Context) error {
	token, err := jwt.Generate(t.SigningKey, jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: t.Subject},
		Email:            t.Email,
		FirstName:        t.FirstName,
		LastName:         t.LastName,
		Role:             t.Role,
	}, t.Issuer, t.TTL)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
