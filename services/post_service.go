package services

import (
	"context"
	"fmt"

	"github.com/Naitikhacke/Exposia/models"
	"github.com/Naitikhacke/Exposia/pkg"
	"github.com/Naitikhacke/Exposia/repository"
	"github.com/Naitikhacke/Exposia/ws"
)

// PostService, gönderi iş mantığı interface'i.
type PostService interface {
	Create(ctx context.Context, authorID string, req *models.CreatePostRequest) (*models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Feed(ctx context.Context, page, limit int) (*models.PostPage, error)
	ListByAuthor(ctx context.Context, authorID string, page, limit int) (*models.PostPage, error)
	Update(ctx context.Context, userID, postID string, req *models.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, userID, postID string) error
}

// postService, PostService interface'inin implementasyonu.
type postService struct {
	postRepo repository.PostRepository
	hub      ws.EventPublisher
}

// NewPostService, constructor.
func NewPostService(postRepo repository.PostRepository, hub ws.EventPublisher) PostService {
	return &postService{postRepo: postRepo, hub: hub}
}

func (s *postService) Create(ctx context.Context, authorID string, req *models.CreatePostRequest) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	post := &models.Post{
		AuthorID:  authorID,
		Type:      req.Type,
		Title:     req.Title,
		Content:   req.Content,
		Published: true,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created post: %w", err)
	}

	// Yazarın kişisel odasına bildir — diğer sekmeleri feed'lerini
	// yeniden yüklemeden yeni gönderiyi gösterebilir.
	s.hub.BroadcastToUser(authorID, ws.Event{
		Op:   ws.OpPostCreated,
		Data: created,
	})

	return created, nil
}

func (s *postService) Get(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Görüntülenme sayacı best-effort — artış hatası okumayı bozmaz.
	if err := s.postRepo.IncrementViews(ctx, id); err == nil {
		post.Views++
	}

	return post, nil
}

func (s *postService) Feed(ctx context.Context, page, limit int) (*models.PostPage, error) {
	return s.postRepo.ListFeed(ctx, page, limit)
}

func (s *postService) ListByAuthor(ctx context.Context, authorID string, page, limit int) (*models.PostPage, error) {
	return s.postRepo.ListByAuthor(ctx, authorID, page, limit)
}

// Update, gönderiyi düzenler. Sadece gönderinin sahibi düzenleyebilir.
func (s *postService) Update(ctx context.Context, userID, postID string, req *models.UpdatePostRequest) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != userID {
		return nil, fmt.Errorf("%w: you can only edit your own posts", pkg.ErrForbidden)
	}

	if req.Title != nil {
		post.Title = req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, postID)
}

// Delete, gönderiyi siler. Sadece gönderinin sahibi silebilir.
func (s *postService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		return fmt.Errorf("%w: you can only delete your own posts", pkg.ErrForbidden)
	}

	return s.postRepo.Delete(ctx, postID)
}
