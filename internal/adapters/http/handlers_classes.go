package web

import (
	"net/http"

	"fitclass/internal/adapters/http/middleware"
	"fitclass/internal/application/orchestrators"
	"fitclass/internal/application/projections"
	"fitclass/internal/domain/apperror"
	"fitclass/internal/domain/fitnessclass"
)

type createClassRequest struct {
	Title       string `json:"title"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD HH:MM:SS
	EndDate     string `json:"end_date"`
	Capacity    int    `json:"capacity"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type classResponse struct {
	ID          string `json:"id"`
	TrainerID   string `json:"trainer_id"`
	TrainerName string `json:"trainer_name"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Capacity    int    `json:"capacity"`
	Location    string `json:"location"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type upcomingClassResponse struct {
	classResponse
	RemainingSpots int `json:"remaining_spots"`
}

func toClassResponse(c fitnessclass.FitnessClass) classResponse {
	return classResponse{
		ID:          c.ID,
		TrainerID:   c.TrainerID,
		TrainerName: c.TrainerName,
		Title:       c.Title,
		StartDate:   fitnessclass.FormatTime(c.StartDate),
		EndDate:     fitnessclass.FormatTime(c.EndDate),
		Capacity:    c.Capacity,
		Location:    c.Location,
		Description: c.Description,
		CreatedAt:   fitnessclass.FormatTime(c.CreatedAt),
	}
}

// handleCreateClass publishes a new fitness class (trainer only).
func (s *Server) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var req createClassRequest
	if err := strictDecode(r, &req); err != nil {
		writeError(w, apperror.New(apperror.KindValidation, "invalid request body"))
		return
	}

	c, err := orchestrators.ExecuteCreateClass(r.Context(), orchestrators.CreateClassInput{
		RequesterID:   sess.UserID,
		RequesterName: sess.Name,
		RequesterRole: sess.Role,
		Title:         req.Title,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Capacity:      req.Capacity,
		Location:      req.Location,
		Description:   req.Description,
	}, orchestrators.CreateClassDeps{
		ClassStore: s.stores.ClassStore,
		Locks:      s.locks,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toClassResponse(c))
}

// handleListUpcomingClasses lists upcoming classes with live availability.
func (s *Server) handleListUpcomingClasses(w http.ResponseWriter, r *http.Request) {
	results, err := projections.QueryGetUpcomingClasses(r.Context(), timeNow(), projections.GetUpcomingClassesDeps{
		ClassStore:   s.stores.ClassStore,
		BookingStore: s.stores.BookingStore,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]upcomingClassResponse, 0, len(results))
	for _, c := range results {
		resp = append(resp, upcomingClassResponse{
			classResponse: classResponse{
				ID:          c.ID,
				TrainerID:   c.TrainerID,
				TrainerName: c.TrainerName,
				Title:       c.Title,
				StartDate:   c.StartDate,
				EndDate:     c.EndDate,
				Capacity:    c.Capacity,
				Location:    c.Location,
				Description: c.Description,
				CreatedAt:   c.CreatedAt,
			},
			RemainingSpots: c.RemainingSpots,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type remindersResponse struct {
	Message string `json:"message"`
	Sent    int    `json:"sent"`
}

// handleSendReminders emails every booked member of a class (owning trainer only).
func (s *Server) handleSendReminders(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	result, err := orchestrators.ExecuteSendReminders(r.Context(), orchestrators.SendRemindersInput{
		ClassID:     r.PathValue("id"),
		RequesterID: sess.UserID,
	}, orchestrators.SendRemindersDeps{
		ClassStore:   s.stores.ClassStore,
		BookingStore: s.stores.BookingStore,
		Sender:       s.sender,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, remindersResponse{Message: "reminders sent successfully", Sent: result.Sent})
}
