package booking

import (
	"context"
	"strings"
	"time"

	"fitclass/internal/adapters/storage"
	domain "fitclass/internal/domain/booking"
	fitnessclass "fitclass/internal/domain/fitnessclass"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new BookingStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const bookingColumns = "id, class_id, user_id, user_email, user_name, booking_time, is_trainer"

// Save inserts a Booking. The UNIQUE(class_id, user_id) index is a backstop
// behind the orchestrator's duplicate check.
// PRE: entity has been validated
// POST: Entity is persisted; returns domain.ErrAlreadyBooked on a pair clash
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Booking) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO booking (id, class_id, user_id, user_email, user_name, booking_time, is_trainer) VALUES (?, ?, ?, ?, ?, ?, ?)",
		entity.ID, entity.ClassID, entity.UserID, entity.UserEmail, entity.UserName,
		fitnessclass.FormatTime(entity.BookingTime), boolToInt(entity.IsTrainer),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return domain.ErrAlreadyBooked
	}
	return err
}

// Exists reports whether the user already holds a booking for the class.
// PRE: classID and userID are non-empty
// POST: Returns true if a booking for the pair exists
func (s *SQLiteStore) Exists(ctx context.Context, classID, userID string) (bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM booking WHERE class_id = ? AND user_id = ?",
		classID, userID)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountMembers counts non-trainer bookings for a class. This count is
// compared against the class capacity.
// PRE: classID is non-empty
// POST: Returns the member booking count
func (s *SQLiteStore) CountMembers(ctx context.Context, classID string) (int, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM booking WHERE class_id = ? AND is_trainer = 0",
		classID)
	var count int
	err := row.Scan(&count)
	return count, err
}

// ListByClass retrieves bookings for a class, ascending by booking time.
// PRE: classID is non-empty
// POST: Returns matching bookings oldest-first
func (s *SQLiteStore) ListByClass(ctx context.Context, classID string) ([]domain.Booking, error) {
	return s.queryBookings(ctx,
		"SELECT "+bookingColumns+" FROM booking WHERE class_id = ? ORDER BY booking_time ASC",
		classID)
}

// ListByUser retrieves bookings for a user, descending by booking time.
// PRE: userID is non-empty
// POST: Returns matching bookings most-recent-first
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.queryBookings(ctx,
		"SELECT "+bookingColumns+" FROM booking WHERE user_id = ? ORDER BY booking_time DESC",
		userID)
}

func (s *SQLiteStore) queryBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Booking
	for rows.Next() {
		var entity domain.Booking
		var bookingTime string
		var isTrainer int
		if err := rows.Scan(&entity.ID, &entity.ClassID, &entity.UserID, &entity.UserEmail,
			&entity.UserName, &bookingTime, &isTrainer); err != nil {
			return nil, err
		}
		if entity.BookingTime, err = time.Parse(fitnessclass.TimeLayout, bookingTime); err != nil {
			return nil, err
		}
		entity.IsTrainer = isTrainer != 0
		results = append(results, entity)
	}
	return results, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
