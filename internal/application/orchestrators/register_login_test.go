package orchestrators

import (
	"context"
	"errors"
	"testing"

	"fitclass/internal/domain/apperror"
	"fitclass/internal/domain/user"
)

func registerDeps(store *mockUserStore) RegisterUserDeps {
	return RegisterUserDeps{
		UserStore:  store,
		GenerateID: seqID(),
		Now:        fixedNow,
	}
}

func memberRegistration() RegisterUserInput {
	return RegisterUserInput{
		Email:    "maya@example.com",
		Password: "correct horse battery",
		Name:     "Maya Lin",
		Birthday: "1994-06-12",
		Role:     user.RoleMember,
	}
}

func TestExecuteRegisterUser_Success(t *testing.T) {
	store := newMockUserStore()
	u, err := ExecuteRegisterUser(context.Background(), memberRegistration(), registerDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "test-id-001" {
		t.Errorf("expected generated ID, got %s", u.ID)
	}
	if u.PasswordHash == "" || u.PasswordHash == "correct horse battery" {
		t.Error("expected password to be hashed before storage")
	}
	if _, err := store.GetByEmail(context.Background(), "maya@example.com"); err != nil {
		t.Error("expected user to be persisted")
	}
}

func TestExecuteRegisterUser_DefaultsToMember(t *testing.T) {
	input := memberRegistration()
	input.Role = ""
	u, err := ExecuteRegisterUser(context.Background(), input, registerDeps(newMockUserStore()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Role != user.RoleMember {
		t.Errorf("expected default role member, got %s", u.Role)
	}
}

func TestExecuteRegisterUser_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterUserInput)
	}{
		{"missing email", func(i *RegisterUserInput) { i.Email = "" }},
		{"missing password", func(i *RegisterUserInput) { i.Password = "" }},
		{"missing name", func(i *RegisterUserInput) { i.Name = "" }},
		{"missing birthday", func(i *RegisterUserInput) { i.Birthday = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := memberRegistration()
			tt.mutate(&input)
			_, err := ExecuteRegisterUser(context.Background(), input, registerDeps(newMockUserStore()))
			if !apperror.IsKind(err, apperror.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestExecuteRegisterUser_InvalidRole(t *testing.T) {
	input := memberRegistration()
	input.Role = "admin"
	_, err := ExecuteRegisterUser(context.Background(), input, registerDeps(newMockUserStore()))
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for bad role, got %v", err)
	}
}

func TestExecuteRegisterUser_DuplicateEmail(t *testing.T) {
	store := newMockUserStore()
	deps := registerDeps(store)

	if _, err := ExecuteRegisterUser(context.Background(), memberRegistration(), deps); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, err := ExecuteRegisterUser(context.Background(), memberRegistration(), deps)
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
}

func TestExecuteLogin_Success(t *testing.T) {
	store := newMockUserStore()
	registered, err := ExecuteRegisterUser(context.Background(), memberRegistration(), registerDeps(store))
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	u, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "maya@example.com",
		Password: "correct horse battery",
	}, LoginDeps{UserStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != registered.ID {
		t.Errorf("expected the registered user back, got %s", u.ID)
	}
}

// Unknown email and wrong password must be indistinguishable.
func TestExecuteLogin_InvalidCredentials(t *testing.T) {
	store := newMockUserStore()
	_, _ = ExecuteRegisterUser(context.Background(), memberRegistration(), registerDeps(store))

	tests := []struct {
		name  string
		input LoginInput
	}{
		{"unknown email", LoginInput{Email: "nobody@example.com", Password: "correct horse battery"}},
		{"wrong password", LoginInput{Email: "maya@example.com", Password: "wrong"}},
		{"empty email", LoginInput{Password: "correct horse battery"}},
		{"empty password", LoginInput{Email: "maya@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExecuteLogin(context.Background(), tt.input, LoginDeps{UserStore: store})
			if !apperror.IsKind(err, apperror.KindUnauthorized) {
				t.Fatalf("expected unauthorized, got %v", err)
			}
			if err.Error() != "invalid email or password" {
				t.Errorf("expected uniform message, got %q", err.Error())
			}
		})
	}
}

// A user lookup that fails for a reason other than absence is an internal
// error, not a credential rejection.
func TestExecuteLogin_StoreFailureIsInternal(t *testing.T) {
	store := newMockUserStore()
	store.getErr = errors.New("database is locked (5) (SQLITE_BUSY)")

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "maya@example.com",
		Password: "correct horse battery",
	}, LoginDeps{UserStore: store})
	if err == nil {
		t.Fatal("expected error")
	}
	if apperror.KindOf(err) != apperror.KindInternal {
		t.Errorf("expected internal kind, got %v (%v)", apperror.KindOf(err), err)
	}
}
