package user

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"fitclass/internal/adapters/storage"
	fitnessclass "fitclass/internal/domain/fitnessclass"
	domain "fitclass/internal/domain/user"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new UserStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const userColumns = "id, email, password_hash, name, birthday, role, created_at"

// GetByID retrieves a User by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM user WHERE id = ?", id)
	return scanUser(row)
}

// GetByEmail retrieves a User by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM user WHERE email = ?", email)
	return scanUser(row)
}

// Save inserts a User. Users are immutable after registration, so there is
// no update path.
// PRE: entity has been validated and PasswordHash is set
// POST: Entity is persisted; returns domain.ErrDuplicateEmail on an email clash
func (s *SQLiteStore) Save(ctx context.Context, entity domain.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO user (id, email, password_hash, name, birthday, role, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		entity.ID, entity.Email, entity.PasswordHash, entity.Name, entity.Birthday, entity.Role,
		fitnessclass.FormatTime(entity.CreatedAt),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: user.email") {
		return domain.ErrDuplicateEmail
	}
	return err
}

func scanUser(row *sql.Row) (domain.User, error) {
	var entity domain.User
	var createdAt string
	err := row.Scan(&entity.ID, &entity.Email, &entity.PasswordHash, &entity.Name, &entity.Birthday, &entity.Role, &createdAt)
	if err == sql.ErrNoRows {
		return domain.User{}, fmt.Errorf("user not found: %w", err)
	}
	if err != nil {
		return domain.User{}, err
	}
	entity.CreatedAt, err = parseStoredTime(createdAt)
	return entity, err
}

func parseStoredTime(value string) (time.Time, error) {
	return time.Parse(fitnessclass.TimeLayout, value)
}
