package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Naitikhacke/Exposia/models"
	"github.com/Naitikhacke/Exposia/pkg"
	"github.com/Naitikhacke/Exposia/repository"
	"github.com/Naitikhacke/Exposia/ws"
)

// CommentService, yorum iş mantığı interface'i.
//
// Create akışı iki giriş noktasından tetiklenir (REST + ws comment:create)
// ve her ikisi de aynı sıralamadan geçer:
//  1. Validate + gönderi var mı kontrolü
//  2. DB'ye kaydet
//  3. post:<id> odasına comment:new broadcast — yorumu yazan dahil,
//     böylece yazanın diğer sekmeleri de günceli görür
//  4. Gönderi sahibine COMMENT bildirimi (kendi gönderisine yorum hariç)
type CommentService interface {
	Create(ctx context.Context, authorID string, req *models.CreateCommentRequest) (*models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
	Delete(ctx context.Context, userID, commentID string) error
}

// commentService, CommentService interface'inin implementasyonu.
type commentService struct {
	commentRepo   repository.CommentRepository
	postRepo      repository.PostRepository
	hub           ws.EventPublisher
	notifications NotificationService
}

// NewCommentService, constructor.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	hub ws.EventPublisher,
	notifications NotificationService,
) CommentService {
	return &commentService{
		commentRepo:   commentRepo,
		postRepo:      postRepo,
		hub:           hub,
		notifications: notifications,
	}
}

func (s *commentService) Create(ctx context.Context, authorID string, req *models.CreateCommentRequest) (*models.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Gönderi kontrolü — olmayan gönderiye yorum yazılamaz.
	post, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: post not found", pkg.ErrNotFound)
		}
		return nil, err
	}

	// Cevap validasyonu — parent yorum aynı gönderide mi?
	if req.ParentID != nil && *req.ParentID != "" {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("%w: parent comment not found", pkg.ErrBadRequest)
		}
		if parent.PostID != req.PostID {
			return nil, fmt.Errorf("%w: parent comment is not on this post", pkg.ErrBadRequest)
		}
	}

	comment := &models.Comment{
		PostID:   req.PostID,
		AuthorID: authorID,
		Content:  req.Content,
		ParentID: req.ParentID,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Yazar özetini JOIN'li okuma ile yükle — broadcast payload'ı
	// frontend'in ekstra istek atmadan render edebileceği kadar dolu olsun.
	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created comment: %w", err)
	}

	// Persist başarılı — ancak şimdi broadcast edilir.
	s.hub.BroadcastToRoom(ws.PostRoom(created.PostID), ws.Event{
		Op:   ws.OpCommentNew,
		Data: created,
	})

	// Kendi gönderine yorum → bildirim yok.
	if post.AuthorID != authorID {
		s.notifications.NotifyComment(ctx, post.AuthorID, models.CommentNotificationPayload{
			PostID:    created.PostID,
			CommentID: created.ID,
			AuthorID:  authorID,
		})
	}

	return created, nil
}

func (s *commentService) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	// Gönderi kontrolü — olmayan gönderi için boş liste yerine 404.
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPostID(ctx, postID)
}

// Delete, yorumu siler. Sadece yorumun sahibi silebilir.
func (s *commentService) Delete(ctx context.Context, userID, commentID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != userID {
		return fmt.Errorf("%w: you can only delete your own comments", pkg.ErrForbidden)
	}

	return s.commentRepo.Delete(ctx, commentID)
}
