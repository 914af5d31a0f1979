package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/terraincognita07/grimoire/internal/models"
)

var (
	ErrInvalidTurn       = errors.New("invalid turn")
	ErrInvalidPhaseRange = errors.New("invalid phase range")
	ErrInvalidPhaseLevel = errors.New("invalid phase level")
)

// TaskVisibleAtPhase reports whether min_phase <= level <= max_phase, with a nil
// max_phase meaning unbounded.
func TaskVisibleAtPhase(task models.Task, level int) bool {
	if task.MinPhase > level {
		return false
	}
	return task.MaxPhase == nil || *task.MaxPhase >= level
}

func FilterTasksByPhase(tasks []models.Task, level int) []models.Task {
	filtered := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if TaskVisibleAtPhase(task, level) {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

// ParsePhaseLevel accepts a numeric level ("2") or a phase name ("month2").
func ParsePhaseLevel(raw string) (int, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if level := models.PhaseLevel(value); level > 0 {
		return level, nil
	}
	level, err := strconv.Atoi(value)
	if err != nil || level < 1 {
		return 0, ErrInvalidPhaseLevel
	}
	return level, nil
}

func validatePhaseRange(minPhase int, maxPhase *int) error {
	if minPhase < 1 {
		return ErrInvalidPhaseRange
	}
	if maxPhase != nil && *maxPhase < minPhase {
		return ErrInvalidPhaseRange
	}
	return nil
}

func normalizeTurn(raw string) (string, error) {
	turn := strings.ToLower(strings.TrimSpace(raw))
	if !models.IsValidTurn(turn) {
		return "", ErrInvalidTurn
	}
	return turn, nil
}
