package models

import "time"

const (
	PhaseMonth1 = "month1"
	PhaseMonth2 = "month2"
	PhaseMonth3 = "month3"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         *string   `json:"name"`
	Savings      float64   `gorm:"not null;default:0" json:"savings"`
	CurrentPhase string    `gorm:"not null;default:month1" json:"current_phase"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PhaseLevel maps a phase name to its numeric level. Unknown names map to 0.
func PhaseLevel(phase string) int {
	switch phase {
	case PhaseMonth1:
		return 1
	case PhaseMonth2:
		return 2
	case PhaseMonth3:
		return 3
	default:
		return 0
	}
}

func IsValidPhase(phase string) bool {
	return PhaseLevel(phase) > 0
}
