package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Naitikhacke/Exposia/models"
	"github.com/Naitikhacke/Exposia/pkg"
	"github.com/Naitikhacke/Exposia/services"
)

// MessageHandler, direkt mesaj endpoint'lerini yöneten struct.
//
// REST Send ve MarkRead, ws message:send / message:read ile aynı service
// path'inden geçer — okundu bilgisi ve bildirim davranışı giriş
// noktasından bağımsızdır.
type MessageHandler struct {
	messageService services.MessageService
}

// NewMessageHandler, constructor.
func NewMessageHandler(messageService services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send godoc
// POST /api/messages
// Body: { "receiver_id": "...", "content": "..." }
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.messageService.Send(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, message)
}

// GetConversation godoc
// GET /api/messages/{userId}?before=<messageId>&limit=50
// Karşı tarafla olan mesajlaşma geçmişi, cursor-based pagination.
func (h *MessageHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	beforeID := r.URL.Query().Get("before")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	page, err := h.messageService.GetConversation(r.Context(), user.ID, r.PathValue("userId"), beforeID, limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, page)
}

// ListConversations godoc
// GET /api/conversations
// Mesaj listesi ekranı: her karşı taraf için son mesaj + okunmamış sayısı.
func (h *MessageHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	conversations, err := h.messageService.ListConversations(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, conversations)
}

// MarkRead godoc
// POST /api/messages/{id}/read
// Okundu bilgisi ws üzerinden gönderenin kişisel odasına yayılır.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	message, err := h.messageService.MarkRead(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, message)
}

// UnreadCount godoc
// GET /api/messages/unread/count
func (h *MessageHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	count, err := h.messageService.UnreadCount(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]int64{"count": count})
}
