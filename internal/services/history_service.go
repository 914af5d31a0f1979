package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/terraincognita07/grimoire/internal/models"
)

var (
	ErrHistoryFieldsRequired = errors.New("history fields required")
	ErrInvalidMonth          = errors.New("invalid month")
	ErrHistoryLoadFailed     = errors.New("load history failed")
	ErrHistorySaveFailed     = errors.New("save history failed")
)

type HistoryRepository interface {
	ListByUserRange(userID uint, fromDate string, toDate string) ([]models.DailyHistory, error)
	Upsert(userID uint, historyDate string, percent int, phase string) (models.DailyHistory, bool, error)
}

type HistoryService struct {
	history HistoryRepository
}

func NewHistoryService(history HistoryRepository) *HistoryService {
	return &HistoryService{history: history}
}

// CompletionPercent is completed/total as a whole percentage, rounded half away
// from zero. Zero tasks yield zero.
func CompletionPercent(completed int, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}

// ListMonth returns the rows of one calendar month ordered by date. A zero year
// or month falls back to the month containing now.
func (service *HistoryService) ListMonth(userID uint, year int, month int, now time.Time) ([]models.DailyHistory, error) {
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 || year < 1 {
		return nil, ErrInvalidMonth
	}

	first, last := MonthRange(year, time.Month(month))
	rows, err := service.history.ListByUserRange(userID, FormatDate(first), FormatDate(last))
	if err != nil {
		return nil, ErrHistoryLoadFailed
	}
	return rows, nil
}

// Save records the completion percentage for one day, replacing any earlier
// value. The percent and phase are stored as the client computed them.
func (service *HistoryService) Save(userID uint, rawDate string, percent *int, phase string) (models.DailyHistory, bool, error) {
	if strings.TrimSpace(rawDate) == "" || percent == nil {
		return models.DailyHistory{}, false, ErrHistoryFieldsRequired
	}
	historyDate, err := NormalizeDate(rawDate)
	if err != nil {
		return models.DailyHistory{}, false, err
	}

	row, created, err := service.history.Upsert(userID, historyDate, *percent, phase)
	if err != nil {
		return models.DailyHistory{}, false, ErrHistorySaveFailed
	}
	return row, created, nil
}
