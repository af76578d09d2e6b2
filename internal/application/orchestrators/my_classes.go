package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"fitclass/internal/domain/apperror"
	"fitclass/internal/domain/booking"
	"fitclass/internal/domain/fitnessclass"
	"fitclass/internal/domain/user"
)

// BookingListStore defines the ledger interface needed by MyBookedClasses.
type BookingListStore interface {
	ListByUser(ctx context.Context, userID string) ([]booking.Booking, error)
}

// BookedClass is a user's booking joined with its class details.
type BookedClass struct {
	ClassID     string
	Title       string
	TrainerName string
	StartDate   string // YYYY-MM-DD HH:MM:SS
	EndDate     string
	Location    string
	Description string
	BookedAt    string
}

// MyBookedClassesResult carries the join result. Unavailable counts bookings
// whose class could not be resolved; they are excluded from Classes but not
// hidden from the caller.
type MyBookedClassesResult struct {
	Classes     []BookedClass
	Unavailable int
}

// MyBookedClassesInput carries input for the booked-classes orchestrator.
// Requester fields come from the verified session.
type MyBookedClassesInput struct {
	RequesterID   string
	RequesterRole string
}

// MyBookedClassesDeps holds dependencies for MyBookedClasses.
type MyBookedClassesDeps struct {
	BookingStore BookingListStore
	ClassStore   ClassLookupStore
}

// ExecuteMyBookedClasses lists the classes a member has booked, most recent
// booking first. Trainers have no booking path, so the view is member-only.
// PRE: Requester is a member resolved from the session
// POST: Returns resolvable booked classes plus a count of unresolvable ones
func ExecuteMyBookedClasses(ctx context.Context, input MyBookedClassesInput, deps MyBookedClassesDeps) (MyBookedClassesResult, error) {
	if input.RequesterRole == user.RoleTrainer {
		return MyBookedClassesResult{}, apperror.New(apperror.KindForbidden, "only members can view their booked classes")
	}

	bookings, err := deps.BookingStore.ListByUser(ctx, input.RequesterID)
	if err != nil {
		return MyBookedClassesResult{}, err
	}

	result := MyBookedClassesResult{Classes: []BookedClass{}}
	for _, b := range bookings {
		class, err := deps.ClassStore.GetByID(ctx, b.ClassID)
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn("booking_event", "event", "booked_class_unresolvable",
				"booking_id", b.ID, "class_id", b.ClassID)
			result.Unavailable++
			continue
		}
		if err != nil {
			return MyBookedClassesResult{}, err
		}
		result.Classes = append(result.Classes, BookedClass{
			ClassID:     class.ID,
			Title:       class.Title,
			TrainerName: class.TrainerName,
			StartDate:   fitnessclass.FormatTime(class.StartDate),
			EndDate:     fitnessclass.FormatTime(class.EndDate),
			Location:    class.Location,
			Description: class.Description,
			BookedAt:    fitnessclass.FormatTime(b.BookingTime),
		})
	}
	return result, nil
}
