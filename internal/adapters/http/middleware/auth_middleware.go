package middleware

import (
	"crypto/subtle"
	"errors"

	"github.com/gimhantharuke456/policeappbackend/internal/core/domain"
	"github.com/gimhantharuke456/policeappbackend/internal/core/services"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminKeyHeader carries the admin API key
const AdminKeyHeader = "X-Admin-Key"

// AuthMiddleware requires a valid bearer token and stores the token
// identity in locals "officerSVC" and "officerID"
func AuthMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := authService.Verify(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				return response.BadRequest(c, domain.Message(err))
			}
			return response.Unauthorized(c, domain.Message(err))
		}

		c.Locals("officerSVC", identity.OfficerSVC)
		c.Locals("officerID", identity.ID)

		return c.Next()
	}
}

// AdminKey guards admin routes with a shared key. An empty key disables them.
func AdminKey(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiKey == "" {
			return response.Forbidden(c, "Admin API is disabled")
		}
		provided := c.Get(AdminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}
