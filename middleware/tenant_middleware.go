package middleware

import (
	"github.com/almusafir/travel_booking/utils"
	"github.com/gofiber/fiber/v2"
)

// TenantContext resolves the X-Tenant-ID header once per request so every
// handler sees the same normalized tenant. The gateway validates the header
// upstream; anything missing or malformed falls back to the public tenant.
func TenantContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("tenant_id", utils.NormalizeTenant(c.Get("X-Tenant-ID")))
		return c.Next()
	}
}
