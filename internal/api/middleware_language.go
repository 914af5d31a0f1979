package api

import "github.com/gofiber/fiber/v2"

// LanguageMiddleware picks the response language from the lang query
// parameter, then Accept-Language, then the configured default.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	if queryLanguage := c.Query("lang"); queryLanguage != "" {
		language = handler.i18n.NormalizeLanguage(queryLanguage)
	}

	c.Locals(contextLanguageKey, language)
	c.Set(fiber.HeaderContentLanguage, language)
	return c.Next()
}
