package models

import "time"

type Journal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	WeekStart string    `gorm:"not null" json:"week_start"`
	WeekEnd   string    `gorm:"not null" json:"week_end"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
