package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agency-api/internal/application/dto"
	"github.com/jhoicas/agency-api/internal/domain/entity"
)

// reservedSegments primeros segmentos que no son dominios de tenant.
var reservedSegments = map[string]bool{"agency": true, "subaccount": true, "api": true, "site": true, "docs": true}

// Site godoc
// @Summary      Catálogo público de planes
// @Tags         site
// @Produce      json
// @Success      200  {object}  dto.SiteResponse
// @Router       /site [get]
func Site(c *fiber.Ctx) error {
	return c.JSON(dto.NewSiteResponse(entity.PlanCatalog()))
}

// TenantSite godoc
// @Summary      Sitio de un tenant
// @Description  Destino de los rewrites por subdominio: /{domain}/{path}.
// @Tags         site
// @Produce      json
// @Param        domain  path  string  true  "Subdominio o dominio propio"
// @Success      200  {object}  dto.TenantSiteResponse
// @Router       /{domain}/{path} [get]
func TenantSite(c *fiber.Ctx) error {
	domain := strings.TrimSuffix(c.Params("domain"), ".")
	if domain == "" || reservedSegments[domain] {
		return c.Next()
	}
	return c.JSON(dto.TenantSiteResponse{Domain: domain, Path: "/" + c.Params("*")})
}
