package services

import (
	"context"
	"fmt"

	"github.com/Naitikhacke/Exposia/models"
	"github.com/Naitikhacke/Exposia/pkg"
	"github.com/Naitikhacke/Exposia/repository"
)

// ReactionService, gönderi tepkisi iş mantığı interface'i.
type ReactionService interface {
	// React, gönderiye tepki ekler veya mevcut tepkinin türünü değiştirir.
	// İlk tepki gönderi sahibine REACTION bildirimi üretir; tür değişikliği
	// yeni bildirim üretmez (bildirim spam'i önlenir).
	React(ctx context.Context, userID, postID string, req *models.ReactRequest) (*models.Reaction, error)
	Unreact(ctx context.Context, userID, postID string) error
	ListByPost(ctx context.Context, postID string) ([]models.Reaction, error)
}

// reactionService, ReactionService interface'inin implementasyonu.
type reactionService struct {
	reactionRepo  repository.ReactionRepository
	postRepo      repository.PostRepository
	notifications NotificationService
}

// NewReactionService, constructor.
func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
	notifications NotificationService,
) ReactionService {
	return &reactionService{
		reactionRepo:  reactionRepo,
		postRepo:      postRepo,
		notifications: notifications,
	}
}

func (s *reactionService) React(ctx context.Context, userID, postID string, req *models.ReactRequest) (*models.Reaction, error) {
	if !models.ValidReactionType(req.Type) {
		return nil, fmt.Errorf("%w: invalid reaction type", pkg.ErrBadRequest)
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	reaction := &models.Reaction{
		PostID: postID,
		UserID: userID,
		Type:   req.Type,
	}

	created, err := s.reactionRepo.Upsert(ctx, reaction)
	if err != nil {
		return nil, err
	}

	// Kendi gönderine tepki → bildirim yok.
	if created && post.AuthorID != userID {
		s.notifications.NotifyReaction(ctx, post.AuthorID, models.ReactionNotificationPayload{
			PostID:       postID,
			UserID:       userID,
			ReactionType: req.Type,
		})
	}

	return reaction, nil
}

func (s *reactionService) Unreact(ctx context.Context, userID, postID string) error {
	return s.reactionRepo.Delete(ctx, postID, userID)
}

func (s *reactionService) ListByPost(ctx context.Context, postID string) ([]models.Reaction, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.reactionRepo.ListByPostID(ctx, postID)
}
