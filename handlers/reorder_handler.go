package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"focusmindAPI/internal/ordering"
	"focusmindAPI/internal/types/habit"
	"focusmindAPI/middleware"
	"focusmindAPI/services"
)

// ReorderHandler drives the staged reorder flow: start opens a session,
// moves mutate its overlay, commit persists and ends it, discard just
// ends it. Nothing touches the store until commit.
type ReorderHandler struct {
	habitService *services.HabitService
	sessions     *ordering.Manager
}

func NewReorderHandler(habitService *services.HabitService, sessions *ordering.Manager) *ReorderHandler {
	return &ReorderHandler{
		habitService: habitService,
		sessions:     sessions,
	}
}

func (h *ReorderHandler) Start(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	h.sessions.Start(ownerID)
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "staging"})
}

func (h *ReorderHandler) Move(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ownerID, ok := middleware.GetOwnerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req habit.MoveHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dir := ordering.Direction(req.Direction)
	if dir != ordering.DirectionUp && dir != ordering.DirectionDown {
		respondWithError(w, http.StatusBadRequest, "Direction must be 'up' or 'down'")
		return
	}

	session, err := h.sessions.Get(ownerID)
	if err != nil {
		respondWithError(w, http.StatusConflict, "Reordering has not been started")
		return
	}

	habits, err := h.habitService.List(ctx, ownerID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load habits")
		return
	}

	if err := session.Move(habits, req.HabitID, dir); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "moved"})
}

func (h *ReorderHandler) Commit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ownerID, ok := middleware.GetOwnerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	session, err := h.sessions.Get(ownerID)
	if err != nil {
		if errors.Is(err, ordering.ErrNotStaging) {
			respondWithError(w, http.StatusConflict, "Reordering has not been started")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to commit order")
		return
	}

	habits, err := h.habitService.List(ctx, ownerID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load habits")
		return
	}

	updates := session.Commit(habits)
	if err := h.habitService.ApplyOrderUpdates(ctx, updates); err != nil {
		// The session stays open so the client can retry the commit.
		respondWithError(w, http.StatusInternalServerError, "Failed to persist order")
		return
	}

	h.sessions.End(ownerID)
	respondWithJSON(w, http.StatusOK, map[string]int{"updated": len(updates)})
}

func (h *ReorderHandler) Discard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	h.sessions.End(ownerID)
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "discarded"})
}
