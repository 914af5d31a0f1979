package models

import "time"

type DailyHistory struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null" json:"user_id"`
	HistoryDate       string    `gorm:"not null" json:"history_date"`
	CompletionPercent int       `gorm:"not null;default:0" json:"completion_percent"`
	Phase             string    `gorm:"not null;default:''" json:"phase"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (DailyHistory) TableName() string {
	return "daily_history"
}
