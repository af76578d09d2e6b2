package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"fitclass/internal/application/keylock"
	"fitclass/internal/domain/apperror"
	"fitclass/internal/domain/booking"
	"fitclass/internal/domain/fitnessclass"
	"fitclass/internal/domain/user"
)

// BookingStore defines the ledger interface needed by BookClass.
type BookingStore interface {
	Save(ctx context.Context, b booking.Booking) error
	Exists(ctx context.Context, classID, userID string) (bool, error)
	CountMembers(ctx context.Context, classID string) (int, error)
}

// ClassLookupStore defines the catalog interface needed for class resolution.
type ClassLookupStore interface {
	GetByID(ctx context.Context, id string) (fitnessclass.FitnessClass, error)
}

// BookClassInput carries input for the booking orchestrator.
// Requester fields come from the verified session.
type BookClassInput struct {
	ClassID        string
	RequesterID    string
	RequesterEmail string
	RequesterName  string
	RequesterRole  string
}

// BookClassDeps holds dependencies for BookClass.
type BookClassDeps struct {
	BookingStore BookingStore
	ClassStore   ClassLookupStore
	Locks        *keylock.KeyedMutex
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteBookClass books a seat in a class for a member.
// The duplicate check, capacity check, and write run inside a per-class
// critical section; concurrent bookings for the same class serialize, so
// the member count can never jointly exceed capacity. Bookings for
// different classes do not contend.
// PRE: Requester is a member resolved from the session
// POST: Booking persisted with IsTrainer=false and BookingTime=now
// INVARIANT: CountMembers(class) <= class.Capacity; one booking per (class, user)
func ExecuteBookClass(ctx context.Context, input BookClassInput, deps BookClassDeps) (booking.Booking, error) {
	if input.RequesterRole == user.RoleTrainer {
		return booking.Booking{}, apperror.New(apperror.KindForbidden, "trainers cannot book classes")
	}
	if input.ClassID == "" {
		return booking.Booking{}, apperror.New(apperror.KindValidation, "class_id is required")
	}

	class, err := deps.ClassStore.GetByID(ctx, input.ClassID)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.Booking{}, apperror.New(apperror.KindValidation, "class not found")
	}
	if err != nil {
		return booking.Booking{}, err
	}

	unlock := deps.Locks.Lock("class:" + input.ClassID)
	defer unlock()

	exists, err := deps.BookingStore.Exists(ctx, input.ClassID, input.RequesterID)
	if err != nil {
		return booking.Booking{}, err
	}
	if exists {
		slog.Info("booking_event", "event", "booking_rejected", "class_id", input.ClassID,
			"user_id", input.RequesterID, "reason", "duplicate")
		return booking.Booking{}, apperror.Wrap(apperror.KindConflict, booking.ErrAlreadyBooked)
	}

	count, err := deps.BookingStore.CountMembers(ctx, input.ClassID)
	if err != nil {
		return booking.Booking{}, err
	}
	if count >= class.Capacity {
		slog.Info("booking_event", "event", "booking_rejected", "class_id", input.ClassID,
			"user_id", input.RequesterID, "reason", "full", "capacity", class.Capacity)
		return booking.Booking{}, apperror.Wrap(apperror.KindConflict, booking.ErrClassFull)
	}

	b := booking.Booking{
		ID:          deps.GenerateID(),
		ClassID:     input.ClassID,
		UserID:      input.RequesterID,
		UserEmail:   input.RequesterEmail,
		UserName:    input.RequesterName,
		BookingTime: deps.Now(),
		IsTrainer:   false,
	}
	if err := b.Validate(); err != nil {
		return booking.Booking{}, apperror.Wrap(apperror.KindValidation, err)
	}

	if err := deps.BookingStore.Save(ctx, b); err != nil {
		// The UNIQUE(class_id, user_id) backstop fires only if the
		// duplicate check above was raced, which the lock prevents.
		if errors.Is(err, booking.ErrAlreadyBooked) {
			return booking.Booking{}, apperror.Wrap(apperror.KindConflict, err)
		}
		return booking.Booking{}, err
	}

	slog.Info("booking_event", "event", "booking_created", "booking_id", b.ID,
		"class_id", b.ClassID, "user_id", b.UserID, "spots_left", class.Capacity-count-1)
	return b, nil
}
