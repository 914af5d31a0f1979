package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired verifies the bearer token and stores the principal for the
// downstream handler. Every failure is answered with 401.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	principal, err := handler.authenticateRequest(c)
	if err != nil {
		if errors.Is(err, errMissingBearerToken) {
			return handler.apiError(c, fiber.StatusUnauthorized, "auth.token_missing")
		}
		return handler.apiError(c, fiber.StatusUnauthorized, "auth.token_invalid")
	}

	c.Locals(contextPrincipalKey, principal)
	return c.Next()
}
