package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/grimoire/internal/models"
)

var ErrInvalidDate = errors.New("invalid date")

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// ParseDate parses a YYYY-MM-DD calendar date into UTC midnight.
func ParseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(models.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

func FormatDate(value time.Time) string {
	return value.Format(models.DateLayout)
}

// NormalizeDate reformats raw as a canonical YYYY-MM-DD string.
func NormalizeDate(raw string) (string, error) {
	parsed, err := ParseDate(raw)
	if err != nil {
		return "", err
	}
	return FormatDate(parsed), nil
}

// WeekBounds returns the Sunday on or before day and the Saturday six days later.
func WeekBounds(day time.Time) (time.Time, time.Time) {
	year, month, date := day.Date()
	start := time.Date(year, month, date, 0, 0, 0, 0, day.Location())
	start = start.AddDate(0, 0, -int(start.Weekday()))
	return start, start.AddDate(0, 0, 6)
}

// MonthRange returns the first and last calendar dates of the month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}
