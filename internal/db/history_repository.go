package db

import (
	"time"

	"github.com/terraincognita07/grimoire/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository struct {
	database *gorm.DB
}

func NewHistoryRepository(database *gorm.DB) *HistoryRepository {
	return &HistoryRepository{database: database}
}

// ListByUserRange returns rows with fromDate <= history_date <= toDate.
func (repo *HistoryRepository) ListByUserRange(userID uint, fromDate string, toDate string) ([]models.DailyHistory, error) {
	rows := make([]models.DailyHistory, 0)
	if err := repo.database.
		Where("user_id = ? AND history_date >= ? AND history_date <= ?", userID, fromDate, toDate).
		Order("history_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (repo *HistoryRepository) Upsert(userID uint, historyDate string, percent int, phase string) (models.DailyHistory, bool, error) {
	var row models.DailyHistory
	created := false

	err := repo.database.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.DailyHistory{}).
			Where("user_id = ? AND history_date = ?", userID, historyDate).
			Count(&existing).Error; err != nil {
			return err
		}
		created = existing == 0

		entry := models.DailyHistory{
			UserID:            userID,
			HistoryDate:       historyDate,
			CompletionPercent: percent,
			Phase:             phase,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "history_date"}},
			DoUpdates: clause.Assignments(map[string]any{
				"completion_percent": percent,
				"phase":              phase,
				"updated_at":         time.Now(),
			}),
		}).Create(&entry).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ? AND history_date = ?", userID, historyDate).First(&row).Error
	})
	if err != nil {
		return models.DailyHistory{}, false, err
	}
	return row, created, nil
}
