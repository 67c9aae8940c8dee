package handlers

import (
	"log"

	"github.com/almusafir/travel_booking/payments"
	"github.com/almusafir/travel_booking/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// tenantID returns the tenant resolved by the tenant middleware, falling
// back to normalizing the header directly for routes mounted without it.
func tenantID(c *fiber.Ctx) string {
	if tenant, ok := c.Locals("tenant_id").(string); ok && tenant != "" {
		return tenant
	}
	return utils.NormalizeTenant(c.Get("X-Tenant-ID"))
}

// currentUser returns the authenticated identity for audit attribution: the
// JWT subject when a token is present, else the gateway-supplied X-User
// header, else "admin".
func currentUser(c *fiber.Ctx) string {
	if token, ok := c.Locals("user").(*jwt.Token); ok {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if email, ok := claims["email"].(string); ok && email != "" {
				return email
			}
		}
	}
	if user := c.Get("X-User"); user != "" {
		return user
	}
	return "admin"
}

func paymentError(c *fiber.Ctx, err error) error {
	switch payments.KindOf(err) {
	case payments.KindValidation, payments.KindDeadlineExceeded,
		payments.KindAuthentication, payments.KindConfiguration:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case payments.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case payments.KindConflict:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case payments.KindUpstream:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("🔥 Unexpected payment error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
}
