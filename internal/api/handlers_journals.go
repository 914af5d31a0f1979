package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListJournals(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "auth.token_invalid")
	}

	handler.ensureDependencies()
	journals, err := handler.journalService.List(principal.UserID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(journals)
}

// CurrentJournal returns this week's entry or an empty placeholder for it.
func (handler *Handler) CurrentJournal(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "auth.token_invalid")
	}

	handler.ensureDependencies()
	journal, found, err := handler.journalService.Current(principal.UserID, handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !found {
		return c.JSON(fiber.Map{
			"content":    "",
			"week_start": journal.WeekStart,
			"week_end":   journal.WeekEnd,
		})
	}
	return c.JSON(journal)
}

func (handler *Handler) SaveJournal(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "auth.token_invalid")
	}

	input := journalInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_json")
	}

	handler.ensureDependencies()
	journal, created, err := handler.journalService.Save(principal.UserID, input.Content, input.WeekStart, handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(upsertStatus(created)).JSON(journal)
}
