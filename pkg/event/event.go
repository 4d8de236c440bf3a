package event

import (
	"errors"
	"strings"
	"time"
)

const (
	// DateLayout is the canonical textual form of an event date.
	DateLayout = "2006-01-02"
	// TimeLayout is the canonical textual form of a time of day.
	TimeLayout = "15:04"
)

// Event is one calendar entry owned by a user. StartTime and EndTime are
// empty when absent; all temporal fields carry their canonical textual form.
type Event struct {
	ID        int
	User      string
	Title     string
	Date      string
	StartTime string
	EndTime   string
}

// Draft is the input to Create. User is taken from the request context,
// never from the draft.
type Draft struct {
	Title     string
	Date      string
	StartTime string
	EndTime   string
}

// Patch is the input to Update. Empty fields are left unchanged.
type Patch struct {
	Title     string
	Date      string
	StartTime string
	EndTime   string
}

var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTime      = errors.New("time must be in HH:MM (24-hour) format")
	ErrInvalidTimeRange = errors.New("start time must be earlier than or equal to end time")
	ErrDuplicateEvent   = errors.New("an event with the same title, date and start time already exists")
	ErrInvalidDayCount  = errors.New("number of days must not be negative")
)

// IsValidationError reports whether err is one of the input validation kinds,
// as opposed to a conflict or an infrastructure failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidTime) ||
		errors.Is(err, ErrInvalidTimeRange) ||
		errors.Is(err, ErrInvalidDayCount)
}

// ValidateDate checks that date is a real calendar date in canonical form.
func ValidateDate(date string) error {
	parsed, err := time.Parse(DateLayout, date)
	if err != nil || parsed.Format(DateLayout) != date {
		return ErrInvalidDate
	}
	return nil
}

// ValidateTime checks that t is a canonical HH:MM time of day.
func ValidateTime(t string) error {
	parsed, err := time.Parse(TimeLayout, t)
	if err != nil || parsed.Format(TimeLayout) != t {
		return ErrInvalidTime
	}
	return nil
}

// validateTimeRange checks start <= end when both are present.
// Equal instants are permitted.
func validateTimeRange(start, end string) error {
	if start == "" || end == "" {
		return nil
	}
	startParsed, err := time.Parse(TimeLayout, start)
	if err != nil {
		return ErrInvalidTime
	}
	endParsed, err := time.Parse(TimeLayout, end)
	if err != nil {
		return ErrInvalidTime
	}
	if startParsed.After(endParsed) {
		return ErrInvalidTimeRange
	}
	return nil
}

// Validate checks a draft against the canonical forms and the time range
// invariant.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if err := ValidateDate(d.Date); err != nil {
		return err
	}
	if d.StartTime != "" {
		if err := ValidateTime(d.StartTime); err != nil {
			return err
		}
	}
	if d.EndTime != "" {
		if err := ValidateTime(d.EndTime); err != nil {
			return err
		}
	}
	return validateTimeRange(d.StartTime, d.EndTime)
}
