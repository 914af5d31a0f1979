package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func TestStructLiteralHandlerWiresServicesOnFirstRequest(t *testing.T) {
	base := newTestEnv(t)
	user := base.createUser(t, "guardian@example.com")

	handler := &Handler{
		db:           base.database,
		secretKey:    []byte(testSecretKey),
		location:     time.UTC,
		i18n:         base.handler.i18n,
		logger:       zap.NewNop(),
		now:          time.Now,
		loginLimiter: newAttemptLimiter(loginAttemptsLimit, loginAttemptsWindow),
	}
	if handler.authService != nil || handler.journalService != nil {
		t.Fatal("expected struct literal handler to start without services")
	}

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	env := &testEnv{app: app, handler: handler, database: base.database}

	login := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "guardian@example.com",
		"password": testPassword,
	})
	expectStatus(t, login, http.StatusOK)

	if handler.repositories == nil || handler.taskService == nil || handler.journalService == nil {
		t.Fatal("expected first request to wire every service")
	}

	tasks := env.do(t, http.MethodGet, "/api/tasks", env.tokenFor(t, user), nil)
	expectStatus(t, tasks, http.StatusOK)
}
