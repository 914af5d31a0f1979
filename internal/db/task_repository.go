package db

import (
	"github.com/terraincognita07/grimoire/internal/models"
	"gorm.io/gorm"
)

// Turns sort in day order, not alphabetically.
const taskOrder = "CASE turn WHEN 'morning' THEN 0 WHEN 'day' THEN 1 WHEN 'afternoon' THEN 2 WHEN 'night' THEN 3 ELSE 4 END, sort_order ASC, id ASC"

type TaskRepository struct {
	database *gorm.DB
}

func NewTaskRepository(database *gorm.DB) *TaskRepository {
	return &TaskRepository{database: database}
}

func (repo *TaskRepository) ListByUser(userID uint, activeOnly bool) ([]models.Task, error) {
	query := repo.database.Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	tasks := make([]models.Task, 0)
	if err := query.Order(taskOrder).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (repo *TaskRepository) FindByIDForUser(taskID uint, userID uint) (models.Task, error) {
	task := models.Task{}
	if err := repo.database.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (repo *TaskRepository) ExistsByKey(userID uint, taskKey string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Task{}).
		Where("user_id = ? AND task_key = ?", userID, taskKey).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *TaskRepository) Create(task *models.Task) error {
	return repo.database.Create(task).Error
}

func (repo *TaskRepository) UpdateByIDForUser(taskID uint, userID uint, updates map[string]any) (int64, error) {
	result := repo.database.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (repo *TaskRepository) Deactivate(taskID uint, userID uint) (int64, error) {
	result := repo.database.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
