package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListHistory(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "auth.token_invalid")
	}

	year, err := parseOptionalQueryInt(c, "year")
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "history.invalid_month")
	}
	month, err := parseOptionalQueryInt(c, "month")
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "history.invalid_month")
	}

	handler.ensureDependencies()
	rows, err := handler.historyService.ListMonth(principal.UserID, year, month, handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(rows)
}

func (handler *Handler) SaveHistory(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "auth.token_invalid")
	}

	input := historyInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_json")
	}

	handler.ensureDependencies()
	row, created, err := handler.historyService.Save(principal.UserID, input.Date, input.CompletionPercent, input.Phase)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(upsertStatus(created)).JSON(row)
}
