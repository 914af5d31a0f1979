package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/grimoire/internal/db"
	"github.com/terraincognita07/grimoire/internal/i18n"
	"github.com/terraincognita07/grimoire/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL = 7 * 24 * time.Hour

	loginAttemptsLimit  = 5
	loginAttemptsWindow = 15 * time.Minute
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	i18n         *i18n.Manager
	logger       *zap.Logger
	now          func() time.Time
	loginLimiter *attemptLimiter

	repositories   *db.Repositories
	authService    *services.AuthService
	taskService    *services.TaskService
	checkService   *services.CheckService
	historyService *services.HistoryService
	journalService *services.JournalService
}

func NewHandler(database *gorm.DB, secret string, location *time.Location, i18nManager *i18n.Manager, logger *zap.Logger) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if secret == "" {
		return nil, errors.New("secret key is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secret),
		location:     location,
		i18n:         i18nManager,
		logger:       logger,
		now:          time.Now,
		loginLimiter: newAttemptLimiter(loginAttemptsLimit, loginAttemptsWindow),
	}
	return handler.withDependencies(database), nil
}

func (handler *Handler) currentTime() time.Time {
	return handler.now().In(handler.location)
}
