package booking

import (
	"context"

	domain "fitclass/internal/domain/booking"
)

// Store persists Booking state. Invariant checks (duplicate, capacity) are
// the booking orchestrator's responsibility; Save is the unconditional write.
type Store interface {
	Save(ctx context.Context, value domain.Booking) error
	Exists(ctx context.Context, classID, userID string) (bool, error)
	CountMembers(ctx context.Context, classID string) (int, error)
	ListByClass(ctx context.Context, classID string) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
}
