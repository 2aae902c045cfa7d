package models

import (
	"encoding/json"
	"time"
)

// NotificationType, bir bildirimin türünü temsil eder.
type NotificationType string

// İzin verilen NotificationType değerleri.
const (
	NotificationReaction NotificationType = "REACTION"
	NotificationComment  NotificationType = "COMMENT"
	NotificationMessage  NotificationType = "MESSAGE"
)

// Notification, bir kullanıcıya gösterilecek bildirimi temsil eder
// (notifications tablosu).
//
// Payload türe özgü yapısal veri taşır ve DB'de JSON TEXT olarak saklanır:
//   - COMMENT:  { "post_id": ..., "comment_id": ..., "author_id": ... }
//   - MESSAGE:  { "message_id": ..., "sender_id": ... }
//   - REACTION: { "post_id": ..., "user_id": ..., "reaction_type": ... }
//
// Bildirimler bu core tarafından oluşturulduktan sonra sadece read
// flag'i değişir.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"` // Alıcı
	Type      NotificationType `json:"type"`
	Payload   json.RawMessage  `json:"payload"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// CommentNotificationPayload, COMMENT bildirimi payload'ı.
type CommentNotificationPayload struct {
	PostID    string `json:"post_id"`
	CommentID string `json:"comment_id"`
	AuthorID  string `json:"author_id"`
}

// MessageNotificationPayload, MESSAGE bildirimi payload'ı.
type MessageNotificationPayload struct {
	MessageID string `json:"message_id"`
	SenderID  string `json:"sender_id"`
}

// ReactionNotificationPayload, REACTION bildirimi payload'ı.
type ReactionNotificationPayload struct {
	PostID       string       `json:"post_id"`
	UserID       string       `json:"user_id"`
	ReactionType ReactionType `json:"reaction_type"`
}
