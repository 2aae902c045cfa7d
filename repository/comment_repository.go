package repository

import (
	"context"

	"github.com/Naitikhacke/Exposia/models"
)

// CommentRepository, yorum veritabanı işlemleri için interface.
// Yorumlar oluşturulduktan sonra değiştirilmez — Update yoktur.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	Delete(ctx context.Context, id string) error
}
