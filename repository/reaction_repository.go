package repository

import (
	"context"

	"github.com/Naitikhacke/Exposia/models"
)

// ReactionRepository, gönderi tepkileri için interface.
// UNIQUE(post_id, user_id) — kullanıcı başına gönderi başına tek tepki.
type ReactionRepository interface {
	// Upsert, tepkiyi yazar. Kullanıcının bu gönderiye zaten tepkisi
	// varsa türü güncellenir; created ilk kez eklenip eklenmediğini döner.
	Upsert(ctx context.Context, reaction *models.Reaction) (created bool, err error)
	Delete(ctx context.Context, postID, userID string) error
	ListByPostID(ctx context.Context, postID string) ([]models.Reaction, error)
}
