package models

import "time"

// DateLayout is the storage and wire format of calendar dates.
const DateLayout = "2006-01-02"

type DailyCheck struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UserID      uint         `gorm:"not null" json:"user_id"`
	TaskID      uint         `gorm:"not null" json:"task_id"`
	CheckDate   string       `gorm:"not null" json:"check_date"`
	IsCompleted bool         `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt   time.Time    `json:"created_at"`
	Task        *TaskSummary `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
