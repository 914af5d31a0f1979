package api

import (
	"errors"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/grimoire/internal/services"
	"go.uber.org/zap"
)

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_json")
	}

	now := handler.currentTime()
	limiterKey := loginLimiterKey(c, input.Email)
	if wait := handler.loginLimiter.retryAfter(limiterKey, now); wait > 0 {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		return handler.apiError(c, fiber.StatusTooManyRequests, "auth.too_many_attempts")
	}

	handler.ensureDependencies()
	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginLimiter.recordFailure(limiterKey, now)
		}
		return handler.respondServiceError(c, err)
	}
	handler.loginLimiter.forget(limiterKey)

	token, err := handler.buildToken(&user, defaultAuthTokenTTL)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.logger.Info("login succeeded", zap.Uint("user_id", user.ID))
	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "auth.token_invalid")
	}

	handler.ensureDependencies()
	user, err := handler.authService.Profile(principal.UserID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(user)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := currentPrincipal(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "auth.token_invalid")
	}

	input := profileUpdateInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_json")
	}

	handler.ensureDependencies()
	user, err := handler.authService.UpdateProfile(principal.UserID, services.ProfileUpdate{
		Savings:      input.Savings,
		CurrentPhase: input.CurrentPhase,
		Name:         input.Name,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(user)
}
