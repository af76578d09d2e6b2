package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"fitclass/internal/domain/apperror"
	"fitclass/internal/domain/user"
)

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	UserStore UserStore
}

// ExecuteLogin verifies credentials and returns the user for session creation.
// Unknown email and wrong password are indistinguishable to the caller.
// PRE: Email and Password are provided
// POST: Returns the user on success, an unauthorized error otherwise
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (user.User, error) {
	invalid := apperror.New(apperror.KindUnauthorized, "invalid email or password")

	if input.Email == "" || input.Password == "" {
		return user.User{}, invalid
	}

	u, err := deps.UserStore.GetByEmail(ctx, input.Email)
	if errors.Is(err, sql.ErrNoRows) {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "not_found")
		return user.User{}, invalid
	}
	if err != nil {
		return user.User{}, err
	}

	if err := u.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password")
		return user.User{}, invalid
	}

	slog.Info("auth_event", "event", "login_success", "user_id", u.ID, "role", u.Role)
	return u, nil
}
