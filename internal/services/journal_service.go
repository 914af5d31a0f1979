package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/grimoire/internal/models"
)

var (
	ErrJournalLoadFailed = errors.New("load journals failed")
	ErrJournalSaveFailed = errors.New("save journal failed")
)

type JournalRepository interface {
	ListByUser(userID uint) ([]models.Journal, error)
	FindByUserAndWeek(userID uint, weekStart string) (models.Journal, bool, error)
	Upsert(userID uint, weekStart string, weekEnd string, content *string) (models.Journal, bool, error)
}

type JournalService struct {
	journals JournalRepository
	location *time.Location
}

func NewJournalService(journals JournalRepository, location *time.Location) *JournalService {
	if location == nil {
		location = time.UTC
	}
	return &JournalService{journals: journals, location: location}
}

func (service *JournalService) List(userID uint) ([]models.Journal, error) {
	journals, err := service.journals.ListByUser(userID)
	if err != nil {
		return nil, ErrJournalLoadFailed
	}
	return journals, nil
}

// Current returns the journal for the week containing now. When none exists the
// result is an unsaved placeholder with empty content carrying the week bounds,
// and found is false.
func (service *JournalService) Current(userID uint, now time.Time) (models.Journal, bool, error) {
	start, end := WeekBounds(DateAtLocation(now, service.location))
	weekStart := FormatDate(start)

	journal, found, err := service.journals.FindByUserAndWeek(userID, weekStart)
	if err != nil {
		return models.Journal{}, false, ErrJournalLoadFailed
	}
	if !found {
		empty := ""
		return models.Journal{
			UserID:    userID,
			WeekStart: weekStart,
			WeekEnd:   FormatDate(end),
			Content:   &empty,
		}, false, nil
	}
	return journal, true, nil
}

// Save writes the journal for the week of rawWeekStart, or the current week when
// it is blank. Any date inside a week addresses that week's Sunday row.
func (service *JournalService) Save(userID uint, content *string, rawWeekStart string, now time.Time) (models.Journal, bool, error) {
	day := DateAtLocation(now, service.location)
	if strings.TrimSpace(rawWeekStart) != "" {
		parsed, err := ParseDate(rawWeekStart)
		if err != nil {
			return models.Journal{}, false, err
		}
		day = parsed
	}
	start, end := WeekBounds(day)

	journal, created, err := service.journals.Upsert(userID, FormatDate(start), FormatDate(end), content)
	if err != nil {
		return models.Journal{}, false, ErrJournalSaveFailed
	}
	return journal, created, nil
}
