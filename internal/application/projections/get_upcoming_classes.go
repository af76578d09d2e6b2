package projections

import (
	"context"
	"time"

	"fitclass/internal/domain/fitnessclass"
)

// UpcomingClassStore defines the catalog interface needed by this projection.
type UpcomingClassStore interface {
	ListUpcoming(ctx context.Context, now time.Time) ([]fitnessclass.FitnessClass, error)
}

// MemberCountStore defines the ledger interface needed by this projection.
type MemberCountStore interface {
	CountMembers(ctx context.Context, classID string) (int, error)
}

// GetUpcomingClassesDeps holds dependencies for the projection.
type GetUpcomingClassesDeps struct {
	ClassStore   UpcomingClassStore
	BookingStore MemberCountStore
}

// UpcomingClassResult is one upcoming class with its live availability.
type UpcomingClassResult struct {
	ID             string
	TrainerID      string
	TrainerName    string
	Title          string
	StartDate      string // YYYY-MM-DD HH:MM:SS
	EndDate        string
	Capacity       int
	RemainingSpots int
	Location       string
	Description    string
	CreatedAt      string
}

// QueryGetUpcomingClasses lists classes starting at or after now, ascending
// by start date, each with remaining spots (capacity minus member bookings,
// floored at 0). "Upcoming" is evaluated at call time, never cached.
func QueryGetUpcomingClasses(ctx context.Context, now time.Time, deps GetUpcomingClassesDeps) ([]UpcomingClassResult, error) {
	classes, err := deps.ClassStore.ListUpcoming(ctx, now)
	if err != nil {
		return nil, err
	}

	results := make([]UpcomingClassResult, 0, len(classes))
	for _, c := range classes {
		count, err := deps.BookingStore.CountMembers(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, UpcomingClassResult{
			ID:             c.ID,
			TrainerID:      c.TrainerID,
			TrainerName:    c.TrainerName,
			Title:          c.Title,
			StartDate:      fitnessclass.FormatTime(c.StartDate),
			EndDate:        fitnessclass.FormatTime(c.EndDate),
			Capacity:       c.Capacity,
			RemainingSpots: c.RemainingSpots(count),
			Location:       c.Location,
			Description:    c.Description,
			CreatedAt:      fitnessclass.FormatTime(c.CreatedAt),
		})
	}
	return results, nil
}
