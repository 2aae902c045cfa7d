package repository

import (
	"context"

	"github.com/Naitikhacke/Exposia/models"
)

// MessageRepository, direkt mesaj veritabanı işlemleri için interface.
//
// ListConversation cursor-based pagination kullanır:
// beforeID = bu ID'den önceki mesajları getir (boşsa en yenilerden başla).
//
// Neden cursor-based?
// Offset-based pagination'da yeni mesaj geldiğinde sayfa kayar.
// Cursor-based'de "bu mesajdan önceki N mesaj" denir — kararlı sonuç verir.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)

	// MarkRead, mesajı okundu işaretler. read_at monotoniktir:
	// sadece NULL → timestamp geçişine izin verilir (WHERE read_at IS NULL).
	//
	// Dönüş değerleri:
	//   - mesaj yoksa → pkg.ErrNotFound
	//   - okuyan alıcı değilse → pkg.ErrForbidden
	//   - zaten okunmuşsa → (msg, false, nil) — no-op, timestamp değişmez
	//   - işaretlendiyse → (msg, true, nil)
	MarkRead(ctx context.Context, id, receiverID string) (*models.Message, bool, error)

	ListConversation(ctx context.Context, userID, otherID, beforeID string, limit int) (*models.MessagePage, error)
	ListConversations(ctx context.Context, userID string) ([]models.Conversation, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
}
