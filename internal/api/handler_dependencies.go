package api

import (
	"github.com/terraincognita07/grimoire/internal/db"
	"github.com/terraincognita07/grimoire/internal/services"
	"gorm.io/gorm"
)

// wireServices builds every service over one set of repositories.
func (handler *Handler) wireServices(repositories *db.Repositories) *Handler {
	handler.repositories = repositories
	handler.authService = services.NewAuthService(repositories.Users)
	handler.taskService = services.NewTaskService(repositories.Tasks)
	handler.checkService = services.NewCheckService(repositories.Checks, repositories.Tasks)
	handler.historyService = services.NewHistoryService(repositories.History)
	handler.journalService = services.NewJournalService(repositories.Journals, handler.location)
	return handler
}

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	return handler.wireServices(db.NewRepositories(database))
}

// ensureDependencies completes a Handler built as a struct literal.
func (handler *Handler) ensureDependencies() {
	if handler.journalService != nil || handler.db == nil {
		return
	}
	handler.withDependencies(handler.db)
}
