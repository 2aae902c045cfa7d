// Package main — WebSocket hub callback wire-up.
//
// Hub, persist gerektiren client event'lerini (comment:create, message:send,
// message:read) doğrudan işleyemez — ws paketi service katmanını bilmez
// (Dependency Inversion). Bu dosya Hub callback'lerini service çağrılarına
// bağlar; katmanların buluşma noktası main paketidir.
package main

import (
	"context"
	"log"

	"github.com/Naitikhacke/Exposia/models"
	"github.com/Naitikhacke/Exposia/services"
	"github.com/Naitikhacke/Exposia/ws"
)

// initHubCallbacks, socket event'lerini service katmanına bağlar.
//
// Hata davranışı: service hatası SADECE event'i gönderen oturuma `error`
// event'i olarak döner. Diğer oturumlar ve odadaki kullanıcılar yarım
// kalmış bir işlemin hiçbir izini görmez — broadcast ancak persist
// başarılı olursa (service içinde) yapılır.
func initHubCallbacks(
	hub *ws.Hub,
	commentService services.CommentService,
	messageService services.MessageService,
) {
	hub.OnCommentCreate(func(s *ws.Session, data ws.CommentCreateData) {
		req := &models.CreateCommentRequest{
			PostID:   data.PostID,
			Content:  data.Content,
			ParentID: data.ParentID,
		}

		if _, err := commentService.Create(context.Background(), s.UserID(), req); err != nil {
			log.Printf("[ws] comment:create failed for user %s: %v", s.UserID(), err)
			s.SendEvent(ws.Event{Op: ws.OpError, Data: ws.ErrorData{Message: err.Error()}})
		}
	})

	hub.OnMessageSend(func(s *ws.Session, data ws.MessageSendData) {
		req := &models.SendMessageRequest{
			ReceiverID: data.ReceiverID,
			Content:    data.Content,
		}

		message, err := messageService.Send(context.Background(), s.UserID(), req)
		if err != nil {
			log.Printf("[ws] message:send failed for user %s: %v", s.UserID(), err)
			s.SendEvent(ws.Event{Op: ws.OpError, Data: ws.ErrorData{Message: err.Error()}})
			return
		}

		// Ack sadece gönderen BAĞLANTIYA gider — kullanıcının diğer
		// sekmeleri message:sent almaz, broadcast değildir.
		s.SendEvent(ws.Event{Op: ws.OpMessageSent, Data: message})
	})

	hub.OnMessageRead(func(s *ws.Session, data ws.MessageReadData) {
		// Bilinmeyen mesaj id'si sessiz kalmaz — client'a error event'i
		// döner, böylece hatalı state debug edilebilir.
		if _, err := messageService.MarkRead(context.Background(), s.UserID(), data.MessageID); err != nil {
			log.Printf("[ws] message:read failed for user %s: %v", s.UserID(), err)
			s.SendEvent(ws.Event{Op: ws.OpError, Data: ws.ErrorData{Message: err.Error()}})
		}
	})
}
