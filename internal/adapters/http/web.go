package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"fitclass/internal/adapters/email"
	"fitclass/internal/adapters/http/middleware"
	bookingStore "fitclass/internal/adapters/storage/booking"
	classStore "fitclass/internal/adapters/storage/fitnessclass"
	userStore "fitclass/internal/adapters/storage/user"
	"fitclass/internal/application/keylock"
	"fitclass/internal/domain/apperror"
)

// Stores holds all storage dependencies.
type Stores struct {
	UserStore    userStore.Store
	ClassStore   classStore.Store
	BookingStore bookingStore.Store
}

// Server holds the wired application for the JSON API.
type Server struct {
	stores   *Stores
	sessions *middleware.SessionStore
	sender   email.Sender
	locks    *keylock.KeyedMutex
}

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// NewMux wires the HTTP routes for the app.
func NewMux(stores *Stores, sessions *middleware.SessionStore, sender email.Sender, locks *keylock.KeyedMutex) http.Handler {
	s := &Server{stores: stores, sessions: sessions, sender: sender, locks: locks}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	authed := func(h http.HandlerFunc) http.Handler { return middleware.RequireAuth(h) }
	mux.Handle("POST /api/classes", authed(s.handleCreateClass))
	mux.Handle("GET /api/classes", authed(s.handleListUpcomingClasses))
	mux.Handle("POST /api/classes/{id}/reminders", authed(s.handleSendReminders))
	mux.Handle("POST /api/bookings", authed(s.handleCreateBooking))
	mux.Handle("GET /api/bookings/my-classes", authed(s.handleMyBookedClasses))

	return middleware.LoadSession(sessions)(mux)
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response_encode_failed", "error", err)
	}
}

// writeError maps a classified error to its HTTP status. Unclassified errors
// are logged and reported as a generic internal error so no store or
// provider detail leaks to the client.
func writeError(w http.ResponseWriter, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		slog.Error("internal_error", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal server error"})
		return
	}
	writeJSON(w, kind.HTTPStatus(), map[string]string{"message": err.Error()})
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
