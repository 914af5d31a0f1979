package models

import "time"

const (
	TurnMorning   = "morning"
	TurnDay       = "day"
	TurnAfternoon = "afternoon"
	TurnNight     = "night"
)

// Turns lists the daily buckets in display order.
var Turns = []string{TurnMorning, TurnDay, TurnAfternoon, TurnNight}

type Task struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	TaskKey   string    `gorm:"not null" json:"task_key"`
	Text      string    `gorm:"not null" json:"text"`
	Turn      string    `gorm:"not null" json:"turn"`
	MinPhase  int       `gorm:"not null;default:1" json:"min_phase"`
	MaxPhase  *int      `json:"max_phase"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskSummary is the subset of task fields embedded in check listings.
type TaskSummary struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	TaskKey string `json:"task_key"`
	Text    string `json:"text"`
	Turn    string `json:"turn"`
}

func (TaskSummary) TableName() string {
	return "tasks"
}

func IsValidTurn(turn string) bool {
	for _, candidate := range Turns {
		if candidate == turn {
			return true
		}
	}
	return false
}
