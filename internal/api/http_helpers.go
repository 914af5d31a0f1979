package api

import (
	"github.com/gofiber/fiber/v2"
)

// apiError writes {"error": message} with the message for key translated into
// the request language.
func (handler *Handler) apiError(c *fiber.Ctx, status int, key string) error {
	return c.Status(status).JSON(fiber.Map{"error": handler.translate(c, key)})
}

func (handler *Handler) translate(c *fiber.Ctx, key string) string {
	language := currentLanguage(c)
	if language == "" {
		language = handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	}
	return handler.i18n.Translate(language, key)
}
