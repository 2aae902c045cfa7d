package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Message, iki kullanıcı arasındaki bir direkt mesajı temsil eder
// (messages tablosu).
//
// ReadAt monotoniktir: null → timestamp geçişi tek yönlüdür, bir kez
// set edildikten sonra asla geri alınmaz veya üzerine yazılmaz.
// Bu invariant SQL seviyesinde korunur (WHERE read_at IS NULL).
type Message struct {
	ID         string       `json:"id"`
	SenderID   string       `json:"sender_id"`
	ReceiverID string       `json:"receiver_id"`
	Content    string       `json:"content"`
	ReadAt     *time.Time   `json:"read_at"`
	CreatedAt  time.Time    `json:"created_at"`
	Sender     *UserSummary `json:"sender,omitempty"` // JOIN ile gelen gönderen özeti
}

// MessagePage, cursor-based pagination sonucu.
// "bu ID'den önceki N mesajı getir" — yeni mesaj eklendiğinde sayfa kaymaz.
type MessagePage struct {
	Messages []Message `json:"messages"`
	HasMore  bool      `json:"has_more"`
}

// Conversation, mesaj listesi ekranındaki bir satır: karşı taraf,
// son mesaj ve okunmamış sayısı. messages tablosundan türetilir —
// ayrı bir conversations tablosu yoktur.
type Conversation struct {
	OtherUser   UserSummary `json:"other_user"`
	LastMessage Message     `json:"last_message"`
	UnreadCount int64       `json:"unread_count"`
}

// SendMessageRequest, mesaj gönderme isteği (ws `message:send` + REST).
type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

// Validate, SendMessageRequest'in geçerli olup olmadığını kontrol eder.
func (r *SendMessageRequest) Validate() error {
	if strings.TrimSpace(r.ReceiverID) == "" {
		return fmt.Errorf("receiver_id is required")
	}

	r.Content = strings.TrimSpace(r.Content)
	if r.Content == "" {
		return fmt.Errorf("message content is required")
	}
	if utf8.RuneCountInString(r.Content) > 5000 {
		return fmt.Errorf("message content must be at most 5000 characters")
	}

	return nil
}
