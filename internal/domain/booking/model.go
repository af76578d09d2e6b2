package booking

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyClassID   = errors.New("class ID cannot be empty")
	ErrEmptyUserID    = errors.New("user ID cannot be empty")
	ErrEmptyUserEmail = errors.New("user email cannot be empty")
	ErrAlreadyBooked  = errors.New("you have already booked this class")
	ErrClassFull      = errors.New("class is full")
)

// Booking records one user's seat in one class. UserEmail and UserName are
// snapshots taken at booking time so reminders keep working even if the user
// record changes later.
//
// IsTrainer is always false on the member booking path (trainers are rejected
// before a booking is created); the flag is kept so a future
// trainer-assigned-to-class feature does not need a schema change.
type Booking struct {
	ID          string
	ClassID     string
	UserID      string
	UserEmail   string
	UserName    string
	BookingTime time.Time
	IsTrainer   bool
}

// Validate checks if the Booking has valid data.
// PRE: Booking struct is populated
// POST: Returns nil if valid, error otherwise
func (b *Booking) Validate() error {
	if strings.TrimSpace(b.ClassID) == "" {
		return ErrEmptyClassID
	}
	if strings.TrimSpace(b.UserID) == "" {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(b.UserEmail) == "" {
		return ErrEmptyUserEmail
	}
	return nil
}
