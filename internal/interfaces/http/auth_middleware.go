package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agency-api/internal/application/dto"
	"github.com/jhoicas/agency-api/internal/domain/entity"
	"github.com/jhoicas/agency-api/pkg/jwt"
)

// Locals keys para la identidad de la sesión en Fiber.
const (
	LocalIdentity = "identity"
	LocalUserID   = "user_id"
)

// SessionCookie cookie de sesión del proveedor de identidad.
const SessionCookie = "__session"

// AuthMiddleware valida el Bearer Token JWT y carga la identidad en c.Locals.
// Sin token o con token inválido responde 401.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		setIdentity(c, claims)
		return c.Next()
	}
}

// IdentityMiddleware carga la identidad si la petición trae un token válido (header
// Bearer o cookie de sesión). Sin token, o con uno inválido, la petición sigue como anónima.
func IdentityMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c.Get("Authorization"))
		if tokenString == "" {
			tokenString = c.Cookies(SessionCookie)
		}
		if tokenString == "" {
			return c.Next()
		}
		if claims, err := jwt.Parse(jwtSecret, tokenString); err == nil {
			setIdentity(c, claims)
		}
		return c.Next()
	}
}

// GetIdentity devuelve la identidad del contexto o nil si la petición es anónima.
func GetIdentity(c *fiber.Ctx) *entity.Identity {
	id, _ := c.Locals(LocalIdentity).(*entity.Identity)
	return id
}

// GetUserID devuelve el ID de la identidad del contexto.
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func setIdentity(c *fiber.Ctx, claims *jwt.Claims) {
	c.Locals(LocalIdentity, &entity.Identity{
		ID:        claims.Subject,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		ImageURL:  claims.ImageURL,
		Role:      claims.Role,
	})
	c.Locals(LocalUserID, claims.Subject)
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
