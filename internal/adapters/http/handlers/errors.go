package handlers

import (
	"errors"

	"github.com/gimhantharuke456/policeappbackend/internal/core/domain"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// statusFor maps a service error to its HTTP status code
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrNotAuthorized):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError sends the error envelope for err. Internal failures are logged
// and reported with the generic message only.
func writeError(c *fiber.Ctx, err error) error {
	switch status := statusFor(err); status {
	case fiber.StatusInternalServerError:
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("❌ Request failed")
		return response.InternalServerError(c)
	case fiber.StatusNotFound:
		return response.NotFound(c, domain.Message(err))
	default:
		return response.Error(c, status, domain.Message(err))
	}
}

// parseBody decodes the request body into out
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Validation("Invalid request body")
	}
	return nil
}
