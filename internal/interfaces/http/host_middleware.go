package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/agency-api/internal/application/dto"
	"github.com/jhoicas/agency-api/internal/domain/routing"
)

// HostRouting aplica la decisión del router de host antes de cualquier ruta.
// Debe registrarse después de IdentityMiddleware (usa la identidad para las rutas protegidas).
//   - rewrite: cambia path y query; las rutas siguientes ven el destino.
//   - redirect: 307 al destino.
//   - challenge: 401 bajo /api, 307 al login en el resto.
func HostRouting(router *routing.HostRouter, signInURL string, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := routing.Request{
			Host:          c.Hostname(),
			Path:          c.Path(),
			RawQuery:      string(c.Request().URI().QueryString()),
			Authenticated: GetIdentity(c) != nil,
		}
		d := router.Decide(req)

		switch d.Action {
		case routing.ActionRewrite:
			if d.Path != req.Path || d.RawQuery != req.RawQuery {
				log.Debug().
					Str("host", req.Host).
					Str("from", req.PathWithQuery()).
					Str("to", d.Location()).
					Msg("rewrite")
			}
			c.Path(d.Path)
			c.Request().URI().SetQueryString(d.RawQuery)
			return c.Next()
		case routing.ActionRedirect:
			return c.Redirect(d.Location(), fiber.StatusTemporaryRedirect)
		case routing.ActionChallenge:
			if strings.HasPrefix(req.Path, "/api") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "sesión requerida"})
			}
			return c.Redirect(signInURL, fiber.StatusTemporaryRedirect)
		default:
			return c.Next()
		}
	}
}
