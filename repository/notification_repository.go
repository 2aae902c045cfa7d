package repository

import (
	"context"

	"github.com/Naitikhacke/Exposia/models"
)

// NotificationRepository, bildirim veritabanı işlemleri için interface.
//
// Persist-then-push kontratının persist yarısı buradadır: bildirim önce
// Create ile yazılır, ancak ondan sonra WebSocket push denenir. Alıcı
// offline olsa bile bildirim kaybolmaz — sonraki girişte listeden okunur.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUserID(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}
