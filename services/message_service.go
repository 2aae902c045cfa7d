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

// MessageService, direkt mesaj iş mantığı interface'i.
//
// Send akışı:
//  1. Validate + alıcı var mı kontrolü
//  2. DB'ye kaydet
//  3. Alıcının kişisel odasına (user:<id>) message:new broadcast —
//     alıcının TÜM bağlantıları mesajı alır
//  4. Alıcıya MESSAGE bildirimi (persist → push)
//
// Gönderene message:sent ack'i burada atılmaz — ack broadcast değildir,
// sadece gönderen bağlantıya gider ve caller'ın (ws callback / REST
// handler) sorumluluğundadır.
type MessageService interface {
	Send(ctx context.Context, senderID string, req *models.SendMessageRequest) (*models.Message, error)

	// MarkRead, mesajı okundu işaretler ve işaretleme gerçekleştiyse
	// GÖNDERENİN kişisel odasına message:read okundu bilgisi yayar.
	// Zaten okunmuş mesajda hiçbir event çıkmaz (no-op).
	MarkRead(ctx context.Context, userID, messageID string) (*models.Message, error)

	GetConversation(ctx context.Context, userID, otherID, beforeID string, limit int) (*models.MessagePage, error)
	ListConversations(ctx context.Context, userID string) ([]models.Conversation, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

// messageService, MessageService interface'inin implementasyonu.
type messageService struct {
	messageRepo   repository.MessageRepository
	userRepo      repository.UserRepository
	hub           ws.EventPublisher
	notifications NotificationService
}

// NewMessageService, constructor.
func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	hub ws.EventPublisher,
	notifications NotificationService,
) MessageService {
	return &messageService{
		messageRepo:   messageRepo,
		userRepo:      userRepo,
		hub:           hub,
		notifications: notifications,
	}
}

func (s *messageService) Send(ctx context.Context, senderID string, req *models.SendMessageRequest) (*models.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if req.ReceiverID == senderID {
		return nil, fmt.Errorf("%w: cannot send a message to yourself", pkg.ErrBadRequest)
	}

	// Alıcı kontrolü — FK hatasını beklemek yerine net bir 404 dönülür.
	if _, err := s.userRepo.GetByID(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: receiver not found", pkg.ErrNotFound)
		}
		return nil, err
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	// Gönderen özetiyle birlikte yeniden yükle — message:new payload'ı
	// alıcı tarafında doğrudan render edilebilir olmalı.
	created, err := s.messageRepo.GetByID(ctx, message.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created message: %w", err)
	}

	s.hub.BroadcastToUser(created.ReceiverID, ws.Event{
		Op:   ws.OpMessageNew,
		Data: created,
	})

	// DM bildirimi her zaman üretilir — gönderen ≠ alıcı garanti.
	s.notifications.NotifyMessage(ctx, created.ReceiverID, models.MessageNotificationPayload{
		MessageID: created.ID,
		SenderID:  senderID,
	})

	return created, nil
}

func (s *messageService) MarkRead(ctx context.Context, userID, messageID string) (*models.Message, error) {
	message, updated, err := s.messageRepo.MarkRead(ctx, messageID, userID)
	if err != nil {
		return nil, err
	}

	// Sadece NULL → timestamp geçişinde okundu bilgisi yayılır.
	// Tekrarlanan message:read ikinci bir event üretmez.
	if updated {
		s.hub.BroadcastToUser(message.SenderID, ws.Event{
			Op:   ws.OpMessageReadRcpt,
			Data: ws.ReadReceiptData{MessageID: message.ID},
		})
	}

	return message, nil
}

func (s *messageService) GetConversation(ctx context.Context, userID, otherID, beforeID string, limit int) (*models.MessagePage, error) {
	page, err := s.messageRepo.ListConversation(ctx, userID, otherID, beforeID, limit)
	if err != nil {
		return nil, err
	}

	// Ters çevir (DB'den DESC gelir, frontend ASC bekler).
	messages := page.Messages
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return page, nil
}

func (s *messageService) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	return s.messageRepo.ListConversations(ctx, userID)
}

func (s *messageService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.messageRepo.CountUnread(ctx, userID)
}
