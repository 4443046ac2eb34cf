package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/habitap/habitap/internal/auth"
	"github.com/habitap/habitap/internal/model"
	"github.com/habitap/habitap/internal/service"
)

// HabitHandler serves habit creation and lookups. All routes run behind
// the auth middleware, so the owner always comes from the request context.
type HabitHandler struct {
	habits *service.HabitService
	logger *slog.Logger
}

func NewHabitHandler(habits *service.HabitService, logger *slog.Logger) *HabitHandler {
	return &HabitHandler{
		habits: habits,
		logger: logger,
	}
}

// createHabitRequest is the POST /habits/ body.
type createHabitRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Goal        int        `json:"goal"`
	StartDate   model.Date `json:"start_date"`
	IsCounted   bool       `json:"is_counted"`
}

// HandleCreate creates a habit for the authenticated user.
//
// HTTP: POST /habits/ (bearer)
// BODY: {"name":"Run","description":"","goal":5,"start_date":"2024-01-01","is_counted":true}
//
// 400 if the owner already has a habit with that name.
func (h *HabitHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Could not validate credentials",
		})
		return
	}

	var req createHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid habit JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	habit, err := h.habits.Create(r.Context(), user.ID,
		req.Name, req.Description, req.Goal, req.StartDate, req.IsCounted)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, habit)
}

// HandleList returns all of the authenticated user's habits.
//
// HTTP: GET /habits/ (bearer)
//
// 404 if the user has no habits yet.
func (h *HabitHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Could not validate credentials",
		})
		return
	}

	habits, err := h.habits.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, habits)
}

// HandleGetByName returns one habit by name.
//
// HTTP: GET /habits/{name} (bearer)
//
// Names are only unique per owner, so the lookup is scoped to the
// authenticated user — another user's habit of the same name is invisible
// here.
func (h *HabitHandler) HandleGetByName(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Could not validate credentials",
		})
		return
	}

	name := chi.URLParam(r, "name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "habit name is required",
		})
		return
	}

	habit, err := h.habits.GetByName(r.Context(), user.ID, name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, habit)
}
