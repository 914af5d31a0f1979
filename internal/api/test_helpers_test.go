package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/grimoire/internal/db"
	"github.com/terraincognita07/grimoire/internal/i18n"
	"github.com/terraincognita07/grimoire/internal/models"
	"github.com/terraincognita07/grimoire/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	testSecretKey = "test-secret-key-0123456789abcdef0123"
	testPassword  = "StrongPass1"
)

type testEnv struct {
	app      *fiber.App
	handler  *Handler
	database *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "grimoire-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(database, testSecretKey, time.UTC, i18nManager, zap.NewNop())
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	return &testEnv{app: app, handler: handler, database: database}
}

func (env *testEnv) createUser(t *testing.T, email string) models.User {
	t.Helper()

	authService := services.NewAuthService(db.NewUserRepository(env.database))
	user, err := authService.CreateUser(email, testPassword, "")
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func (env *testEnv) tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := env.handler.buildToken(&user, defaultAuthTokenTTL)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	return token
}

func (env *testEnv) do(t *testing.T, method string, path string, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func expectStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		raw, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", want, response.StatusCode, string(raw))
	}
}

func decodeJSON[T any](t *testing.T, response *http.Response) T {
	t.Helper()

	var payload T
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response body %q: %v", string(raw), err)
	}
	return payload
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()
	return decodeJSON[map[string]string](t, response)["error"]
}
