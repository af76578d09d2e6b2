package web

import (
	"net/http"

	"fitclass/internal/application/orchestrators"
	"fitclass/internal/domain/apperror"
	userDomain "fitclass/internal/domain/user"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"` // YYYY-MM-DD
	Role     string `json:"role"`     // member or trainer
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
	Role     string `json:"role"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

func toUserResponse(u userDomain.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Birthday: u.Birthday,
		Role:     u.Role,
	}
}

// handleRegister creates a new user (member or trainer) and opens a session.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := strictDecode(r, &req); err != nil {
		writeError(w, apperror.New(apperror.KindValidation, "invalid request body"))
		return
	}

	u, err := orchestrators.ExecuteRegisterUser(r.Context(), orchestrators.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Birthday: req.Birthday,
		Role:     req.Role,
	}, orchestrators.RegisterUserDeps{
		UserStore:  s.stores.UserStore,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := s.sessions.Create(u.ID, u.Email, u.Name, u.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{AccessToken: token, User: toUserResponse(u)})
}

// handleLogin verifies credentials and opens a session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := strictDecode(r, &req); err != nil {
		writeError(w, apperror.New(apperror.KindValidation, "invalid request body"))
		return
	}

	u, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, orchestrators.LoginDeps{
		UserStore: s.stores.UserStore,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := s.sessions.Create(u.ID, u.Email, u.Name, u.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, User: toUserResponse(u)})
}
