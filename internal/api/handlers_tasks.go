package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/grimoire/internal/services"
)

func (handler *Handler) ListTasks(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "auth.token_invalid")
	}

	var phaseLevel *int
	if raw := strings.TrimSpace(c.Query("phase")); raw != "" {
		level, err := services.ParsePhaseLevel(raw)
		if err != nil {
			return handler.respondServiceError(c, err)
		}
		phaseLevel = &level
	}

	handler.ensureDependencies()
	tasks, err := handler.taskService.ListActive(principal.UserID, phaseLevel)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(tasks)
}

func (handler *Handler) ListAllTasks(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "auth.token_invalid")
	}

	handler.ensureDependencies()
	tasks, err := handler.taskService.ListAll(principal.UserID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(tasks)
}

func (handler *Handler) CreateTask(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "auth.token_invalid")
	}

	input := taskCreateInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_json")
	}

	handler.ensureDependencies()
	task, err := handler.taskService.Create(principal.UserID, services.TaskCreateInput{
		TaskKey:   input.TaskKey,
		Text:      input.Text,
		Turn:      input.Turn,
		MinPhase:  input.MinPhase,
		MaxPhase:  input.MaxPhase,
		SortOrder: input.SortOrder,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (handler *Handler) UpdateTask(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "auth.token_invalid")
	}

	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "task.invalid_id")
	}

	input := taskUpdateInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_json")
	}

	handler.ensureDependencies()
	task, err := handler.taskService.Update(principal.UserID, taskID, services.TaskPatch{
		Text:      input.Text,
		Turn:      input.Turn,
		MinPhase:  input.MinPhase,
		MaxPhase:  services.NullableInt{Set: input.MaxPhase.Set, Value: input.MaxPhase.Value},
		SortOrder: input.SortOrder,
		IsActive:  input.IsActive,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(task)
}

func (handler *Handler) DeleteTask(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "auth.token_invalid")
	}

	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "task.invalid_id")
	}

	handler.ensureDependencies()
	if err := handler.taskService.SoftDelete(principal.UserID, taskID); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": handler.translate(c, "task.deactivated")})
}
