package repository

import (
	"context"

	"github.com/Naitikhacke/Exposia/models"
)

// PostRepository, gönderi veritabanı işlemleri için interface.
//
// Feed offset-based pagination kullanır: gönderi akışı mesajlar kadar
// hızlı büyümez, sayfa kayması pratikte sorun olmaz ve frontend'in
// "sayfa 3'e git" davranışı korunur.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	ListFeed(ctx context.Context, page, limit int) (*models.PostPage, error)
	ListByAuthor(ctx context.Context, authorID string, page, limit int) (*models.PostPage, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}
