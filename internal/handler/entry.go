package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/habitap/habitap/internal/auth"
	"github.com/habitap/habitap/internal/model"
	"github.com/habitap/habitap/internal/service"
)

// EntryHandler serves daily log entries.
type EntryHandler struct {
	entries *service.EntryService
	logger  *slog.Logger
}

func NewEntryHandler(entries *service.EntryService, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{
		entries: entries,
		logger:  logger,
	}
}

// createEntryRequest is the POST /entries/ body.
type createEntryRequest struct {
	Date    model.Date `json:"date"`
	Value   int        `json:"value"`
	HabitID uuid.UUID  `json:"habit_id"`
}

// HandleCreate logs an entry against a habit.
//
// HTTP: POST /entries/ (bearer)
// BODY: {"habit_id":"<uuid>","date":"2024-01-02","value":3}
//
// The service runs the full validation chain (duplicate, habit existence,
// start date, value domain); every failure is a 400 with the specific
// message.
func (h *EntryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Could not validate credentials",
		})
		return
	}

	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid entry JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	entry, err := h.entries.Create(r.Context(), user.ID, req.HabitID, req.Date, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// HandleListByHabit returns the authenticated user's entries for a habit.
//
// HTTP: GET /entries/{habit_id} (bearer)
//
// 404 if the habit has no entries (or belongs to someone else — the
// ownership scope makes the two indistinguishable, deliberately).
func (h *EntryHandler) HandleListByHabit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Could not validate credentials",
		})
		return
	}

	habitID, err := uuid.Parse(chi.URLParam(r, "habit_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "habit_id must be a valid UUID",
		})
		return
	}

	entries, err := h.entries.ListByHabit(r.Context(), user.ID, habitID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
