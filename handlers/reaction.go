package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Naitikhacke/Exposia/models"
	"github.com/Naitikhacke/Exposia/pkg"
	"github.com/Naitikhacke/Exposia/services"
)

// ReactionHandler, gönderi tepkisi endpoint'lerini yöneten struct.
type ReactionHandler struct {
	reactionService services.ReactionService
}

// NewReactionHandler, constructor.
func NewReactionHandler(reactionService services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// React godoc
// POST /api/posts/{id}/reactions
// Body: { "type": "LIKE" | "LOVE" | "LAUGH" | "INSIGHTFUL" | "CELEBRATE" }
func (h *ReactionHandler) React(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.ReactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reaction, err := h.reactionService.React(r.Context(), user.ID, r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, reaction)
}

// Unreact godoc
// DELETE /api/posts/{id}/reactions
func (h *ReactionHandler) Unreact(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.reactionService.Unreact(r.Context(), user.ID, r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "reaction removed"})
}

// List godoc
// GET /api/posts/{id}/reactions
func (h *ReactionHandler) List(w http.ResponseWriter, r *http.Request) {
	reactions, err := h.reactionService.ListByPost(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, reactions)
}
