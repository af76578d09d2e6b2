package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"fitclass/internal/application/keylock"
	"fitclass/internal/domain/apperror"
	"fitclass/internal/domain/fitnessclass"
	"fitclass/internal/domain/user"
)

// ClassStore defines the catalog interface needed by CreateClass.
type ClassStore interface {
	Save(ctx context.Context, c fitnessclass.FitnessClass) error
	HasOverlap(ctx context.Context, trainerID string, start, end time.Time) (bool, error)
}

// CreateClassInput carries input for the class creation orchestrator.
// Requester fields come from the verified session.
type CreateClassInput struct {
	RequesterID   string
	RequesterName string
	RequesterRole string
	Title         string
	StartDate     string // YYYY-MM-DD HH:MM:SS
	EndDate       string // YYYY-MM-DD HH:MM:SS
	Capacity      int
	Location      string
	Description   string
}

// CreateClassDeps holds dependencies for CreateClass.
type CreateClassDeps struct {
	ClassStore ClassStore
	Locks      *keylock.KeyedMutex
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateClass publishes a new fitness class for a trainer.
// The overlap check and the insert run inside a per-trainer critical
// section so two concurrent creations cannot both pass the check.
// PRE: Requester is a trainer; dates are in the interchange format
// POST: Class persisted; returns the stored class
// INVARIANT: No two classes of one trainer have intersecting [start,end)
func ExecuteCreateClass(ctx context.Context, input CreateClassInput, deps CreateClassDeps) (fitnessclass.FitnessClass, error) {
	if input.RequesterRole != user.RoleTrainer {
		return fitnessclass.FitnessClass{}, apperror.New(apperror.KindForbidden, "only trainers can create classes")
	}
	if input.Title == "" || input.StartDate == "" || input.EndDate == "" || input.Location == "" || input.Description == "" {
		return fitnessclass.FitnessClass{}, apperror.New(apperror.KindValidation,
			"all fields are required: title, start_date, end_date, capacity, location, description")
	}

	start, err := fitnessclass.ParseTime(input.StartDate)
	if err != nil {
		return fitnessclass.FitnessClass{}, apperror.Wrap(apperror.KindValidation, err)
	}
	end, err := fitnessclass.ParseTime(input.EndDate)
	if err != nil {
		return fitnessclass.FitnessClass{}, apperror.Wrap(apperror.KindValidation, err)
	}

	now := deps.Now()
	if start.Before(now) {
		return fitnessclass.FitnessClass{}, apperror.Wrap(apperror.KindValidation, fitnessclass.ErrStartInPast)
	}
	if end.Before(now) {
		return fitnessclass.FitnessClass{}, apperror.Wrap(apperror.KindValidation, fitnessclass.ErrEndInPast)
	}

	c := fitnessclass.FitnessClass{
		ID:          deps.GenerateID(),
		TrainerID:   input.RequesterID,
		TrainerName: input.RequesterName,
		Title:       input.Title,
		StartDate:   start,
		EndDate:     end,
		Capacity:    input.Capacity,
		Location:    input.Location,
		Description: input.Description,
		CreatedAt:   now,
	}
	if err := c.Validate(); err != nil {
		return fitnessclass.FitnessClass{}, apperror.Wrap(apperror.KindValidation, err)
	}

	// Overlap check and insert must not interleave with another creation
	// for the same trainer.
	unlock := deps.Locks.Lock("trainer:" + input.RequesterID)
	defer unlock()

	overlap, err := deps.ClassStore.HasOverlap(ctx, input.RequesterID, start, end)
	if err != nil {
		return fitnessclass.FitnessClass{}, err
	}
	if overlap {
		slog.Info("class_event", "event", "class_rejected", "trainer_id", input.RequesterID, "reason", "overlap")
		return fitnessclass.FitnessClass{}, apperror.Wrap(apperror.KindConflict, fitnessclass.ErrTrainerOverlap)
	}

	if err := deps.ClassStore.Save(ctx, c); err != nil {
		return fitnessclass.FitnessClass{}, err
	}

	slog.Info("class_event", "event", "class_created", "class_id", c.ID, "trainer_id", c.TrainerID,
		"title", c.Title, "capacity", c.Capacity)
	return c, nil
}
