package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/grimoire/internal/db"
	"github.com/terraincognita07/grimoire/internal/models"
)

var (
	ErrTaskFieldsRequired = errors.New("task fields required")
	ErrTaskKeyExists      = errors.New("task key exists")
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskLoadFailed     = errors.New("load tasks failed")
	ErrTaskCreateFailed   = errors.New("create task failed")
	ErrTaskUpdateFailed   = errors.New("update task failed")
	ErrTaskDeleteFailed   = errors.New("delete task failed")
)

type TaskRepository interface {
	ListByUser(userID uint, activeOnly bool) ([]models.Task, error)
	FindByIDForUser(taskID uint, userID uint) (models.Task, error)
	ExistsByKey(userID uint, taskKey string) (bool, error)
	Create(task *models.Task) error
	UpdateByIDForUser(taskID uint, userID uint, updates map[string]any) (int64, error)
	Deactivate(taskID uint, userID uint) (int64, error)
}

type TaskCreateInput struct {
	TaskKey   string
	Text      string
	Turn      string
	MinPhase  *int
	MaxPhase  *int
	SortOrder *int
}

// NullableInt distinguishes an absent field from an explicit null.
type NullableInt struct {
	Set   bool
	Value *int
}

type TaskPatch struct {
	Text      *string
	Turn      *string
	MinPhase  *int
	MaxPhase  NullableInt
	SortOrder *int
	IsActive  *bool
}

type TaskService struct {
	tasks TaskRepository
}

func NewTaskService(tasks TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// ListActive returns active tasks, limited to those visible at phaseLevel when given.
func (service *TaskService) ListActive(userID uint, phaseLevel *int) ([]models.Task, error) {
	tasks, err := service.tasks.ListByUser(userID, true)
	if err != nil {
		return nil, ErrTaskLoadFailed
	}
	if phaseLevel == nil {
		return tasks, nil
	}
	return FilterTasksByPhase(tasks, *phaseLevel), nil
}

func (service *TaskService) ListAll(userID uint) ([]models.Task, error) {
	tasks, err := service.tasks.ListByUser(userID, false)
	if err != nil {
		return nil, ErrTaskLoadFailed
	}
	return tasks, nil
}

func (service *TaskService) Create(userID uint, input TaskCreateInput) (models.Task, error) {
	taskKey := strings.TrimSpace(input.TaskKey)
	text := strings.TrimSpace(input.Text)
	if taskKey == "" || text == "" || strings.TrimSpace(input.Turn) == "" {
		return models.Task{}, ErrTaskFieldsRequired
	}
	turn, err := normalizeTurn(input.Turn)
	if err != nil {
		return models.Task{}, err
	}

	minPhase := 1
	if input.MinPhase != nil && *input.MinPhase != 0 {
		minPhase = *input.MinPhase
	}
	var maxPhase *int
	if input.MaxPhase != nil && *input.MaxPhase != 0 {
		value := *input.MaxPhase
		maxPhase = &value
	}
	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	}
	if err := validatePhaseRange(minPhase, maxPhase); err != nil {
		return models.Task{}, err
	}

	exists, err := service.tasks.ExistsByKey(userID, taskKey)
	if err != nil {
		return models.Task{}, ErrTaskCreateFailed
	}
	if exists {
		return models.Task{}, ErrTaskKeyExists
	}

	task := models.Task{
		UserID:    userID,
		TaskKey:   taskKey,
		Text:      text,
		Turn:      turn,
		MinPhase:  minPhase,
		MaxPhase:  maxPhase,
		SortOrder: sortOrder,
		IsActive:  true,
	}
	if err := service.tasks.Create(&task); err != nil {
		if db.IsUniqueViolation(err) {
			return models.Task{}, ErrTaskKeyExists
		}
		return models.Task{}, ErrTaskCreateFailed
	}
	return task, nil
}

func (service *TaskService) Update(userID uint, taskID uint, patch TaskPatch) (models.Task, error) {
	current, err := service.tasks.FindByIDForUser(taskID, userID)
	if err != nil {
		return models.Task{}, ErrTaskNotFound
	}

	updates := map[string]any{}
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return models.Task{}, ErrTaskFieldsRequired
		}
		updates["text"] = text
	}
	if patch.Turn != nil {
		turn, err := normalizeTurn(*patch.Turn)
		if err != nil {
			return models.Task{}, err
		}
		updates["turn"] = turn
	}

	minPhase := current.MinPhase
	if patch.MinPhase != nil {
		minPhase = *patch.MinPhase
		updates["min_phase"] = minPhase
	}
	maxPhase := current.MaxPhase
	if patch.MaxPhase.Set {
		maxPhase = patch.MaxPhase.Value
		if maxPhase == nil {
			updates["max_phase"] = nil
		} else {
			updates["max_phase"] = *maxPhase
		}
	}
	if err := validatePhaseRange(minPhase, maxPhase); err != nil {
		return models.Task{}, err
	}

	if patch.SortOrder != nil {
		updates["sort_order"] = *patch.SortOrder
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}

	if len(updates) == 0 {
		return current, nil
	}

	affected, err := service.tasks.UpdateByIDForUser(taskID, userID, updates)
	if err != nil {
		return models.Task{}, ErrTaskUpdateFailed
	}
	if affected == 0 {
		return models.Task{}, ErrTaskNotFound
	}

	updated, err := service.tasks.FindByIDForUser(taskID, userID)
	if err != nil {
		return models.Task{}, ErrTaskNotFound
	}
	return updated, nil
}

// SoftDelete marks the task inactive; the row and its checks are kept.
func (service *TaskService) SoftDelete(userID uint, taskID uint) error {
	affected, err := service.tasks.Deactivate(taskID, userID)
	if err != nil {
		return ErrTaskDeleteFailed
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
