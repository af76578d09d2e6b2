package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fitclass/internal/domain/apperror"
	"fitclass/internal/domain/user"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	Save(ctx context.Context, u user.User) error
	GetByID(ctx context.Context, id string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

// RegisterUserInput carries input for the registration orchestrator.
type RegisterUserInput struct {
	Email    string
	Password string
	Name     string
	Birthday string // YYYY-MM-DD
	Role     string // member or trainer
}

// RegisterUserDeps holds dependencies for RegisterUser.
type RegisterUserDeps struct {
	UserStore  UserStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteRegisterUser creates a new user with a hashed password.
// PRE: Email, Password, Name, Birthday are non-empty; Role is member or trainer
// POST: User persisted with bcrypt hash; returns the stored user
// INVARIANT: Email is unique (enforced by store)
func ExecuteRegisterUser(ctx context.Context, input RegisterUserInput, deps RegisterUserDeps) (user.User, error) {
	if input.Email == "" || input.Password == "" || input.Name == "" || input.Birthday == "" {
		return user.User{}, apperror.New(apperror.KindValidation, "email, password, name, and birthday are required")
	}
	if input.Role == "" {
		input.Role = user.RoleMember
	}

	u := user.User{
		ID:        deps.GenerateID(),
		Email:     input.Email,
		Name:      input.Name,
		Birthday:  input.Birthday,
		Role:      input.Role,
		CreatedAt: deps.Now(),
	}
	if err := u.Validate(); err != nil {
		return user.User{}, apperror.Wrap(apperror.KindValidation, err)
	}
	if err := u.SetPassword(input.Password); err != nil {
		return user.User{}, apperror.Wrap(apperror.KindValidation, err)
	}

	if err := deps.UserStore.Save(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			slog.Info("auth_event", "event", "register_rejected", "email", input.Email, "reason", "duplicate_email")
			return user.User{}, apperror.Wrap(apperror.KindConflict, err)
		}
		return user.User{}, err
	}

	slog.Info("auth_event", "event", "user_registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}
