package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Tasks    *TaskRepository
	Checks   *CheckRepository
	History  *HistoryRepository
	Journals *JournalRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Tasks:    NewTaskRepository(database),
		Checks:   NewCheckRepository(database),
		History:  NewHistoryRepository(database),
		Journals: NewJournalRepository(database),
	}
}
