package services

import (
	"errors"

	"github.com/terraincognita07/grimoire/internal/models"
)

var (
	ErrCheckFieldsRequired = errors.New("check fields required")
	ErrCheckLoadFailed     = errors.New("load checks failed")
	ErrCheckSaveFailed     = errors.New("save check failed")
)

type CheckRepository interface {
	ListByUserAndDate(userID uint, checkDate string) ([]models.DailyCheck, error)
	Toggle(userID uint, taskID uint, checkDate string, completed *bool) (models.DailyCheck, bool, error)
}

type CheckTaskLookup interface {
	FindByIDForUser(taskID uint, userID uint) (models.Task, error)
}

type CheckService struct {
	checks CheckRepository
	tasks  CheckTaskLookup
}

func NewCheckService(checks CheckRepository, tasks CheckTaskLookup) *CheckService {
	return &CheckService{checks: checks, tasks: tasks}
}

func (service *CheckService) ListForDate(userID uint, rawDate string) ([]models.DailyCheck, error) {
	checkDate, err := NormalizeDate(rawDate)
	if err != nil {
		return nil, err
	}
	checks, err := service.checks.ListByUserAndDate(userID, checkDate)
	if err != nil {
		return nil, ErrCheckLoadFailed
	}
	return checks, nil
}

// Toggle flips the completion of taskID on rawDate, or sets it when completed is
// given. A missing row is created as completed unless completed says otherwise.
// The bool result is true when a row was inserted.
func (service *CheckService) Toggle(userID uint, taskID uint, rawDate string, completed *bool) (models.DailyCheck, bool, error) {
	if taskID == 0 || rawDate == "" {
		return models.DailyCheck{}, false, ErrCheckFieldsRequired
	}
	checkDate, err := NormalizeDate(rawDate)
	if err != nil {
		return models.DailyCheck{}, false, err
	}
	if _, err := service.tasks.FindByIDForUser(taskID, userID); err != nil {
		return models.DailyCheck{}, false, ErrTaskNotFound
	}

	check, created, err := service.checks.Toggle(userID, taskID, checkDate, completed)
	if err != nil {
		return models.DailyCheck{}, false, ErrCheckSaveFailed
	}
	return check, created, nil
}
