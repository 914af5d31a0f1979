package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListChecks(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "auth.token_invalid")
	}

	handler.ensureDependencies()
	checks, err := handler.checkService.ListForDate(principal.UserID, c.Params("date"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(checks)
}

// ToggleCheck answers 201 when the day's row was created and 200 when it changed.
func (handler *Handler) ToggleCheck(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "auth.token_invalid")
	}

	input := checkToggleInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_json")
	}

	handler.ensureDependencies()
	check, created, err := handler.checkService.Toggle(principal.UserID, input.TaskID, input.Date, input.IsCompleted)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(upsertStatus(created)).JSON(check)
}

func upsertStatus(created bool) int {
	if created {
		return fiber.StatusCreated
	}
	return fiber.StatusOK
}
