package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Naitikhacke/Exposia/models"
	"github.com/Naitikhacke/Exposia/pkg"
	"github.com/Naitikhacke/Exposia/services"
)

// PostHandler, gönderi endpoint'lerini yöneten struct.
type PostHandler struct {
	postService services.PostService
}

// NewPostHandler, constructor.
func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create godoc
// POST /api/posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.postService.Create(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, post)
}

// Feed godoc
// GET /api/posts?page=1&limit=20
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	feed, err := h.postService.Feed(r.Context(), page, limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, feed)
}

// Get godoc
// GET /api/posts/{id}
// Her okuma views sayacını artırır.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.postService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, post)
}

// ListByAuthor godoc
// GET /api/users/{id}/posts?page=1&limit=20
func (h *PostHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	posts, err := h.postService.ListByAuthor(r.Context(), r.PathValue("id"), page, limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, posts)
}

// Update godoc
// PATCH /api/posts/{id}
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.postService.Update(r.Context(), user.ID, r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, post)
}

// Delete godoc
// DELETE /api/posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.postService.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

// parsePagination, ?page= ve ?limit= query parametrelerini okur.
// Geçersiz veya eksik değerlerde service katmanının default'ları devreye girer.
func parsePagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
