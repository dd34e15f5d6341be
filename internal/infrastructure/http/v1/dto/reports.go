package dto

import (
	"time"

	"uretimtrack/internal/core/apperror"
)

// RangeQuery binds the startDate/endDate parameters of range reports.
type RangeQuery struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
}

// Parse validates and parses both dates.
func (q *RangeQuery) Parse() (start, end time.Time, err error) {
	start, err = ParseDate(q.StartDate)
	if err != nil {
		return start, end, apperror.NewValidation("invalid startDate").
			WithDetail("startDate", q.StartDate)
	}
	end, err = ParseDate(q.EndDate)
	if err != nil {
		return start, end, apperror.NewValidation("invalid endDate").
			WithDetail("endDate", q.EndDate)
	}
	return start, end, nil
}

// DateQuery binds the single date parameter of daily reports. An empty
// date means today.
type DateQuery struct {
	Date string `form:"date"`
}

// Parse returns the requested date, defaulting to the current day.
func (q *DateQuery) Parse() (time.Time, error) {
	if q.Date == "" {
		return time.Now(), nil
	}
	t, err := ParseDate(q.Date)
	if err != nil {
		return t, apperror.NewValidation("invalid date").WithDetail("date", q.Date)
	}
	return t, nil
}
