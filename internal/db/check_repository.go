package db

import (
	"github.com/terraincognita07/grimoire/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CheckRepository struct {
	database *gorm.DB
}

func NewCheckRepository(database *gorm.DB) *CheckRepository {
	return &CheckRepository{database: database}
}

func (repo *CheckRepository) ListByUserAndDate(userID uint, checkDate string) ([]models.DailyCheck, error) {
	checks := make([]models.DailyCheck, 0)
	if err := repo.database.
		Preload("Task", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "task_key", "text", "turn")
		}).
		Where("user_id = ? AND check_date = ?", userID, checkDate).
		Order("id ASC").
		Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}

// Toggle writes the completion flag for (user, task, date) in one upsert. A nil
// completed flips an existing row and inserts a completed one. The returned bool
// reports whether the row was created.
func (repo *CheckRepository) Toggle(userID uint, taskID uint, checkDate string, completed *bool) (models.DailyCheck, bool, error) {
	var check models.DailyCheck
	created := false

	err := repo.database.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.DailyCheck{}).
			Where("user_id = ? AND task_id = ? AND check_date = ?", userID, taskID, checkDate).
			Count(&existing).Error; err != nil {
			return err
		}
		created = existing == 0

		insertValue := true
		var updateValue any = gorm.Expr("NOT daily_checks.is_completed")
		if completed != nil {
			insertValue = *completed
			updateValue = *completed
		}

		entry := models.DailyCheck{
			UserID:      userID,
			TaskID:      taskID,
			CheckDate:   checkDate,
			IsCompleted: insertValue,
		}
		if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "task_id"}, {Name: "check_date"}},
			DoUpdates: clause.Assignments(map[string]any{"is_completed": updateValue}),
		}).Create(&entry).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ? AND task_id = ? AND check_date = ?", userID, taskID, checkDate).
			First(&check).Error
	})
	if err != nil {
		return models.DailyCheck{}, false, err
	}
	return check, created, nil
}
