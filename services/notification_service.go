package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Naitikhacke/Exposia/models"
	"github.com/Naitikhacke/Exposia/repository"
	"github.com/Naitikhacke/Exposia/ws"
)

// NotificationService, bildirim iş mantığı interface'i.
//
// Persist-then-push kontratı:
//  1. Bildirim ÖNCE DB'ye yazılır — alıcı offline olsa bile kaybolmaz
//  2. Sonra alıcının kişisel odasına notification:new push edilir —
//     bağlı değilse push sessizce düşer, kayıt zaten durur
//
// Bu sıralama asla ters çevrilmez: push başarılı olup persist başarısız
// olursa alıcı yeniden girişte bildirimi bulamaz.
type NotificationService interface {
	NotifyComment(ctx context.Context, recipientID string, payload models.CommentNotificationPayload)
	NotifyMessage(ctx context.Context, recipientID string, payload models.MessageNotificationPayload)
	NotifyReaction(ctx context.Context, recipientID string, payload models.ReactionNotificationPayload)

	List(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

// notificationService, NotificationService interface'inin implementasyonu.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	hub              ws.EventPublisher
}

// NewNotificationService, constructor.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	hub ws.EventPublisher,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		hub:              hub,
	}
}

func (s *notificationService) NotifyComment(ctx context.Context, recipientID string, payload models.CommentNotificationPayload) {
	s.notify(ctx, recipientID, models.NotificationComment, payload)
}

func (s *notificationService) NotifyMessage(ctx context.Context, recipientID string, payload models.MessageNotificationPayload) {
	s.notify(ctx, recipientID, models.NotificationMessage, payload)
}

func (s *notificationService) NotifyReaction(ctx context.Context, recipientID string, payload models.ReactionNotificationPayload) {
	s.notify(ctx, recipientID, models.NotificationReaction, payload)
}

// notify, persist-then-push akışını uygular.
//
// Hata dönmez: bildirim, tetikleyen işlemin (yorum, mesaj, tepki) yan
// etkisidir — bildirim yazılamadı diye yorumun kendisi başarısız olmaz.
// Persist hatası loglanır ve push atlanır.
func (s *notificationService) notify(ctx context.Context, recipientID string, typ models.NotificationType, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[notification] failed to marshal %s payload: %v", typ, err)
		return
	}

	notification := &models.Notification{
		UserID:  recipientID,
		Type:    typ,
		Payload: raw,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("[notification] failed to persist %s notification for user %s: %v", typ, recipientID, err)
		return
	}

	// Push — alıcının hiçbir bağlantısı yoksa oda boştur, event düşer.
	s.hub.BroadcastToUser(recipientID, ws.Event{
		Op:   ws.OpNotificationNew,
		Data: notification,
	})
}

func (s *notificationService) List(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	return s.notificationRepo.ListByUserID(ctx, userID, limit)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if err := s.notificationRepo.MarkRead(ctx, notificationID, userID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}
