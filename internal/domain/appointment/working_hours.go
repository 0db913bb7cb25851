package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

const minutesPerDay = 24 * 60

// ParseDate accepts only the canonical YYYY-MM-DD form.
func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, raw)
	if err != nil || d.Format(DateLayout) != raw {
		return time.Time{}, httperr.ErrInvalidInput("invalid_date", "Invalid date, expected YYYY-MM-DD.")
	}
	return d, nil
}

// ParseClock returns the minutes since midnight of a canonical HH:MM value.
func ParseClock(raw string) (int, error) {
	t, err := time.Parse(ClockLayout, raw)
	if err != nil || t.Format(ClockLayout) != raw {
		return 0, httperr.ErrInvalidInput("invalid_time", "Invalid time, expected HH:MM.")
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidateWorkingHours checks end > start and a positive interval.
func ValidateWorkingHours(wh models.WorkingHours) error {
	start, err := ParseClock(wh.Start)
	if err != nil {
		return httperr.ErrInvalidInput("invalid_working_hours", "Working hours start must be HH:MM.")
	}
	end, err := ParseClock(wh.End)
	if err != nil {
		return httperr.ErrInvalidInput("invalid_working_hours", "Working hours end must be HH:MM.")
	}
	if end <= start {
		return httperr.ErrInvalidInput("invalid_working_hours", "Working hours end must be after start.")
	}
	if wh.IntervalMin <= 0 || wh.IntervalMin > minutesPerDay {
		return httperr.ErrInvalidInput("invalid_working_hours", "Slot interval must be a positive number of minutes.")
	}
	return nil
}
