package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Naitikhacke/Exposia/models"
	"github.com/Naitikhacke/Exposia/pkg"
	"github.com/Naitikhacke/Exposia/services"
)

// CommentHandler, yorum endpoint'lerini yöneten struct.
//
// REST Create, ws comment:create ile aynı service path'inden geçer —
// broadcast ve bildirim davranışı giriş noktasından bağımsızdır.
type CommentHandler struct {
	commentService services.CommentService
}

// NewCommentHandler, constructor.
func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create godoc
// POST /api/posts/{id}/comments
// Body: { "content": "...", "parent_id": "..." (opsiyonel) }
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.PostID = r.PathValue("id")

	comment, err := h.commentService.Create(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, comment)
}

// List godoc
// GET /api/posts/{id}/comments
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ListByPost(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, comments)
}

// Delete godoc
// DELETE /api/comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.commentService.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}
