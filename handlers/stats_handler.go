package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"focusmindAPI/internal/dates"
	"focusmindAPI/internal/summary"
	"focusmindAPI/internal/types/habit"
	"focusmindAPI/middleware"
	"focusmindAPI/services"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// dateParam reads the optional ?date= query parameter, defaulting to
// today. ok is false when the value is present but malformed.
func dateParam(r *http.Request) (string, bool) {
	date := r.URL.Query().Get("date")
	if date == "" {
		return dates.Today(), true
	}
	if _, err := dates.Parse(date); err != nil {
		return "", false
	}
	return date, true
}

func (h *StatsHandler) GetDaySummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ownerID, ok := middleware.GetOwnerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	date, ok := dateParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	s, err := h.statsService.DaySummary(ctx, ownerID, date)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to build summary")
		return
	}

	// s is nil when nothing is scheduled that day; the client gets null
	respondWithJSON(w, http.StatusOK, s)
}

func (h *StatsHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ownerID, ok := middleware.GetOwnerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	date, ok := dateParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	week, err := h.statsService.Week(ctx, ownerID, date)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to build week")
		return
	}

	respondWithJSON(w, http.StatusOK, week)
}

// PreviewWeek is GetWeek with unsaved hour edits in the request body, so
// the grid can reflect what the user is typing before a save.
func (h *StatsHandler) PreviewWeek(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ownerID, ok := middleware.GetOwnerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req habit.WeekPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Date == "" {
		req.Date = dates.Today()
	} else if _, err := dates.Parse(req.Date); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	week, err := h.statsService.WeekPreview(ctx, ownerID, req.Date, summary.Pending(req.Pending))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to build week")
		return
	}

	respondWithJSON(w, http.StatusOK, week)
}

func (h *StatsHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ownerID, ok := middleware.GetOwnerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	cells, err := h.statsService.Calendar(ctx, ownerID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to build calendar")
		return
	}

	respondWithJSON(w, http.StatusOK, cells)
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ownerID, ok := middleware.GetOwnerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	stats, err := h.statsService.Lifetime(ctx, ownerID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to build stats")
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
