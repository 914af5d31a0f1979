package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": handler.now().UTC().Format(time.RFC3339),
	})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return handler.apiError(c, fiber.StatusNotFound, "error.route_not_found")
}
