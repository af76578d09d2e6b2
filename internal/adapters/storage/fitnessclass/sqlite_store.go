package fitnessclass

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fitclass/internal/adapters/storage"
	domain "fitclass/internal/domain/fitnessclass"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new FitnessClassStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const classColumns = "id, trainer_id, trainer_name, title, start_date, end_date, capacity, location, description, created_at"

// GetByID retrieves a FitnessClass by its ID. A malformed or unknown id is
// reported as not-found, never as a distinct error.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.FitnessClass, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+classColumns+" FROM fitness_class WHERE id = ?", id)
	entity, err := scanClass(row.Scan)
	if err == sql.ErrNoRows {
		return domain.FitnessClass{}, fmt.Errorf("fitness class not found: %w", err)
	}
	return entity, err
}

// Save inserts a FitnessClass. Classes are immutable after creation, so
// there is no update path.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.FitnessClass) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO fitness_class (id, trainer_id, trainer_name, title, start_date, end_date, capacity, location, description, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		entity.ID, entity.TrainerID, entity.TrainerName, entity.Title,
		domain.FormatTime(entity.StartDate), domain.FormatTime(entity.EndDate),
		entity.Capacity, entity.Location, entity.Description,
		domain.FormatTime(entity.CreatedAt),
	)
	return err
}

// ListUpcoming retrieves classes whose start date is at or after now,
// ascending by start date.
// PRE: now is the caller's current time
// POST: Returns matching classes ordered by start_date
func (s *SQLiteStore) ListUpcoming(ctx context.Context, now time.Time) ([]domain.FitnessClass, error) {
	return s.queryClasses(ctx,
		"SELECT "+classColumns+" FROM fitness_class WHERE start_date >= ? ORDER BY start_date",
		domain.FormatTime(now))
}

// ListByTrainer retrieves all classes owned by a trainer. No ordering is
// guaranteed.
// PRE: trainerID is non-empty
// POST: Returns the trainer's classes
func (s *SQLiteStore) ListByTrainer(ctx context.Context, trainerID string) ([]domain.FitnessClass, error) {
	return s.queryClasses(ctx,
		"SELECT "+classColumns+" FROM fitness_class WHERE trainer_id = ?",
		trainerID)
}

// HasOverlap reports whether the trainer already owns a class whose
// [start_date, end_date) interval intersects [start, end). Classes that only
// touch at a boundary do not overlap.
// PRE: trainerID is non-empty, end is after start
// POST: Returns true if an overlapping class exists
func (s *SQLiteStore) HasOverlap(ctx context.Context, trainerID string, start, end time.Time) (bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM fitness_class WHERE trainer_id = ? AND start_date < ? AND end_date > ?",
		trainerID, domain.FormatTime(end), domain.FormatTime(start))
	var count int
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SQLiteStore) queryClasses(ctx context.Context, query string, args ...any) ([]domain.FitnessClass, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.FitnessClass
	for rows.Next() {
		entity, err := scanClass(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanClass(scan func(dest ...any) error) (domain.FitnessClass, error) {
	var entity domain.FitnessClass
	var startDate, endDate, createdAt string
	err := scan(&entity.ID, &entity.TrainerID, &entity.TrainerName, &entity.Title,
		&startDate, &endDate, &entity.Capacity, &entity.Location, &entity.Description, &createdAt)
	if err != nil {
		return domain.FitnessClass{}, err
	}
	if entity.StartDate, err = time.Parse(domain.TimeLayout, startDate); err != nil {
		return domain.FitnessClass{}, err
	}
	if entity.EndDate, err = time.Parse(domain.TimeLayout, endDate); err != nil {
		return domain.FitnessClass{}, err
	}
	if entity.CreatedAt, err = time.Parse(domain.TimeLayout, createdAt); err != nil {
		return domain.FitnessClass{}, err
	}
	return entity, nil
}
