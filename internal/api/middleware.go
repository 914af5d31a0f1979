package api

import "github.com/gofiber/fiber/v2"

const (
	contextPrincipalKey = "current_principal"
	contextLanguageKey  = "current_language"
)

// authPrincipal is the identity carried by a verified bearer token.
type authPrincipal struct {
	UserID uint
	Email  string
}

func currentPrincipal(c *fiber.Ctx) (authPrincipal, bool) {
	principal, ok := c.Locals(contextPrincipalKey).(authPrincipal)
	return principal, ok
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}
