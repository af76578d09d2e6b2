package fitnessclass

import (
	"errors"
	"strings"
	"time"
)

// TimeLayout is the interchange format for class timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// Max length constants for trainer-editable fields.
const (
	MaxTitleLength       = 200
	MaxLocationLength    = 200
	MaxDescriptionLength = 5000
)

// Domain errors
var (
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrEmptyTrainerID     = errors.New("trainer ID cannot be empty")
	ErrEmptyLocation      = errors.New("location cannot be empty")
	ErrInvalidCapacity    = errors.New("capacity must be greater than 0")
	ErrEndBeforeStart     = errors.New("end date must be after start date")
	ErrStartInPast        = errors.New("start date cannot be in the past")
	ErrEndInPast          = errors.New("end date cannot be in the past")
	ErrTrainerOverlap     = errors.New("trainer has overlapping classes at this time")
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD HH:MM:SS")
	ErrDescriptionTooLong = errors.New("description cannot exceed 5000 characters")
)

// FitnessClass represents a single scheduled class published by a trainer.
// TrainerName is a snapshot taken at creation time; classes are immutable
// once published.
type FitnessClass struct {
	ID          string
	TrainerID   string
	TrainerName string
	Title       string
	StartDate   time.Time
	EndDate     time.Time
	Capacity    int
	Location    string
	Description string
	CreatedAt   time.Time
}

// Validate checks the clock-independent invariants of a FitnessClass.
// Past-date checks belong to the creation orchestrator, which owns the clock.
// PRE: FitnessClass struct is populated
// POST: Returns nil if valid, error otherwise
func (c *FitnessClass) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrEmptyTitle
	}
	if len(c.Title) > MaxTitleLength {
		return errors.New("title cannot exceed 200 characters")
	}
	if strings.TrimSpace(c.TrainerID) == "" {
		return ErrEmptyTrainerID
	}
	if strings.TrimSpace(c.Location) == "" {
		return ErrEmptyLocation
	}
	if len(c.Location) > MaxLocationLength {
		return errors.New("location cannot exceed 200 characters")
	}
	if len(c.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if c.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if !c.EndDate.After(c.StartDate) {
		return ErrEndBeforeStart
	}
	return nil
}

// Overlaps reports whether the class interval [StartDate, EndDate) intersects
// [start, end). Intervals that merely touch at a boundary do not overlap.
// INVARIANT: FitnessClass fields are not mutated
func (c *FitnessClass) Overlaps(start, end time.Time) bool {
	return c.StartDate.Before(end) && c.EndDate.After(start)
}

// RemainingSpots returns capacity minus the given member booking count,
// floored at 0.
// INVARIANT: FitnessClass fields are not mutated
func (c *FitnessClass) RemainingSpots(memberBookings int) int {
	remaining := c.Capacity - memberBookings
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ParseTime parses a timestamp in the interchange format.
// PRE: value is non-empty
// POST: Returns the parsed time or ErrInvalidDateFormat
func ParseTime(value string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// FormatTime renders a timestamp in the interchange format.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
