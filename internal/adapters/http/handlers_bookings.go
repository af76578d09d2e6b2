package web

import (
	"net/http"

	"fitclass/internal/adapters/http/middleware"
	"fitclass/internal/application/orchestrators"
	"fitclass/internal/domain/apperror"
	"fitclass/internal/domain/fitnessclass"
)

type createBookingRequest struct {
	ClassID string `json:"class_id"`
}

type bookingResponse struct {
	ID          string `json:"id"`
	ClassID     string `json:"class_id"`
	UserID      string `json:"user_id"`
	UserEmail   string `json:"user_email"`
	UserName    string `json:"user_name"`
	BookingTime string `json:"booking_time"`
	IsTrainer   bool   `json:"is_trainer"`
}

// handleCreateBooking books a seat in a class for the requesting member.
func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var req createBookingRequest
	if err := strictDecode(r, &req); err != nil {
		writeError(w, apperror.New(apperror.KindValidation, "invalid request body"))
		return
	}

	b, err := orchestrators.ExecuteBookClass(r.Context(), orchestrators.BookClassInput{
		ClassID:        req.ClassID,
		RequesterID:    sess.UserID,
		RequesterEmail: sess.Email,
		RequesterName:  sess.Name,
		RequesterRole:  sess.Role,
	}, orchestrators.BookClassDeps{
		BookingStore: s.stores.BookingStore,
		ClassStore:   s.stores.ClassStore,
		Locks:        s.locks,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bookingResponse{
		ID:          b.ID,
		ClassID:     b.ClassID,
		UserID:      b.UserID,
		UserEmail:   b.UserEmail,
		UserName:    b.UserName,
		BookingTime: fitnessclass.FormatTime(b.BookingTime),
		IsTrainer:   b.IsTrainer,
	})
}

type bookedClassResponse struct {
	ClassID     string `json:"class_id"`
	Title       string `json:"title"`
	TrainerName string `json:"trainer_name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Location    string `json:"location"`
	Description string `json:"description"`
	BookedAt    string `json:"booked_at"`
}

type myClassesResponse struct {
	Classes     []bookedClassResponse `json:"classes"`
	Unavailable int                   `json:"unavailable"`
}

// handleMyBookedClasses lists the classes booked by the requesting member,
// most recent booking first. Bookings whose class no longer resolves are
// reported in the unavailable count.
func (s *Server) handleMyBookedClasses(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	result, err := orchestrators.ExecuteMyBookedClasses(r.Context(), orchestrators.MyBookedClassesInput{
		RequesterID:   sess.UserID,
		RequesterRole: sess.Role,
	}, orchestrators.MyBookedClassesDeps{
		BookingStore: s.stores.BookingStore,
		ClassStore:   s.stores.ClassStore,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := myClassesResponse{Classes: make([]bookedClassResponse, 0, len(result.Classes)), Unavailable: result.Unavailable}
	for _, c := range result.Classes {
		resp.Classes = append(resp.Classes, bookedClassResponse{
			ClassID:     c.ClassID,
			Title:       c.Title,
			TrainerName: c.TrainerName,
			StartDate:   c.StartDate,
			EndDate:     c.EndDate,
			Location:    c.Location,
			Description: c.Description,
			BookedAt:    c.BookedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
