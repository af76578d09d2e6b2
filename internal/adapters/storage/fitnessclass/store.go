package fitnessclass

import (
	"context"
	"time"

	domain "fitclass/internal/domain/fitnessclass"
)

// Store persists FitnessClass state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.FitnessClass, error)
	Save(ctx context.Context, value domain.FitnessClass) error
	ListUpcoming(ctx context.Context, now time.Time) ([]domain.FitnessClass, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]domain.FitnessClass, error)
	HasOverlap(ctx context.Context, trainerID string, start, end time.Time) (bool, error)
}
