package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/grimoire/internal/services"
	"go.uber.org/zap"
)

type serviceErrorResponse struct {
	target error
	status int
	key    string
}

var serviceErrorResponses = []serviceErrorResponse{
	{services.ErrAuthCredentialsMissing, fiber.StatusBadRequest, "auth.credentials_required"},
	{services.ErrAuthCredentialsInvalid, fiber.StatusUnauthorized, "auth.invalid_credentials"},
	{services.ErrUserNotFound, fiber.StatusNotFound, "user.not_found"},
	{services.ErrInvalidPhase, fiber.StatusBadRequest, "user.invalid_phase"},
	{services.ErrProfileNameTooLong, fiber.StatusBadRequest, "user.name_too_long"},
	{services.ErrTaskFieldsRequired, fiber.StatusBadRequest, "task.fields_required"},
	{services.ErrInvalidTurn, fiber.StatusBadRequest, "task.invalid_turn"},
	{services.ErrInvalidPhaseRange, fiber.StatusBadRequest, "task.invalid_phase_range"},
	{services.ErrInvalidPhaseLevel, fiber.StatusBadRequest, "task.invalid_phase_level"},
	{services.ErrTaskKeyExists, fiber.StatusBadRequest, "task.key_exists"},
	{services.ErrTaskNotFound, fiber.StatusNotFound, "task.not_found"},
	{services.ErrInvalidDate, fiber.StatusBadRequest, "date.invalid"},
	{services.ErrCheckFieldsRequired, fiber.StatusBadRequest, "check.fields_required"},
	{services.ErrHistoryFieldsRequired, fiber.StatusBadRequest, "history.fields_required"},
	{services.ErrInvalidMonth, fiber.StatusBadRequest, "history.invalid_month"},
}

var storageErrors = []error{
	services.ErrUserLoadFailed,
	services.ErrUserUpdateFailed,
	services.ErrTaskLoadFailed,
	services.ErrTaskCreateFailed,
	services.ErrTaskUpdateFailed,
	services.ErrTaskDeleteFailed,
	services.ErrCheckLoadFailed,
	services.ErrCheckSaveFailed,
	services.ErrHistoryLoadFailed,
	services.ErrHistorySaveFailed,
	services.ErrJournalLoadFailed,
	services.ErrJournalSaveFailed,
}

// respondServiceError maps a service sentinel to its status and message.
// Data-store failures answer 400 with a generic message; anything unknown is a 500.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	for _, mapping := range serviceErrorResponses {
		if errors.Is(err, mapping.target) {
			return handler.apiError(c, mapping.status, mapping.key)
		}
	}
	for _, target := range storageErrors {
		if errors.Is(err, target) {
			handler.logger.Warn("storage operation failed",
				zap.Error(err),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
			)
			return handler.apiError(c, fiber.StatusBadRequest, "error.storage_failed")
		}
	}

	handler.logger.Error("unexpected handler error",
		zap.Error(err),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	)
	return handler.apiError(c, fiber.StatusInternalServerError, "error.internal")
}

// ErrorHandler answers errors that escape handlers, including recovered panics.
func (handler *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			return handler.apiError(c, fiber.StatusNotFound, "error.route_not_found")
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			return handler.apiError(c, fiberErr.Code, "error.invalid_json")
		}
		if fiberErr.Code < fiber.StatusInternalServerError {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}
	}

	handler.logger.Error("request failed",
		zap.Error(err),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	)
	return handler.apiError(c, fiber.StatusInternalServerError, "error.internal")
}
