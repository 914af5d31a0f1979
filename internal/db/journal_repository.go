package db

import (
	"time"

	"github.com/terraincognita07/grimoire/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JournalRepository struct {
	database *gorm.DB
}

func NewJournalRepository(database *gorm.DB) *JournalRepository {
	return &JournalRepository{database: database}
}

func (repo *JournalRepository) ListByUser(userID uint) ([]models.Journal, error) {
	journals := make([]models.Journal, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("week_start DESC").Find(&journals).Error; err != nil {
		return nil, err
	}
	return journals, nil
}

func (repo *JournalRepository) FindByUserAndWeek(userID uint, weekStart string) (models.Journal, bool, error) {
	journal := models.Journal{}
	result := repo.database.
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		Limit(1).
		Find(&journal)
	if result.Error != nil {
		return models.Journal{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Journal{}, false, nil
	}
	return journal, true, nil
}

func (repo *JournalRepository) Upsert(userID uint, weekStart string, weekEnd string, content *string) (models.Journal, bool, error) {
	var journal models.Journal
	created := false

	err := repo.database.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Journal{}).
			Where("user_id = ? AND week_start = ?", userID, weekStart).
			Count(&existing).Error; err != nil {
			return err
		}
		created = existing == 0

		entry := models.Journal{
			UserID:    userID,
			WeekStart: weekStart,
			WeekEnd:   weekEnd,
			Content:   content,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
			DoUpdates: clause.Assignments(map[string]any{
				"content":    content,
				"updated_at": time.Now(),
			}),
		}).Create(&entry).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ? AND week_start = ?", userID, weekStart).First(&journal).Error
	})
	if err != nil {
		return models.Journal{}, false, err
	}
	return journal, created, nil
}
