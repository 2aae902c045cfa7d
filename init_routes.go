// Package main — HTTP route registration.
package main

import (
	"fmt"
	"net/http"

	"github.com/Naitikhacke/Exposia/handlers"
	"github.com/Naitikhacke/Exposia/middleware"
	"github.com/Naitikhacke/Exposia/ws"
)

// Handlers, tüm handler'ları taşıyan wire-up container'ı.
type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Post         *handlers.PostHandler
	Comment      *handlers.CommentHandler
	Reaction     *handlers.ReactionHandler
	Message      *handlers.MessageHandler
	Notification *handlers.NotificationHandler
	WS           *ws.Handler
}

// initRoutes, tüm endpoint'leri mux'a bağlar.
//
// Route sıralama kuralı: Literal path'ler parametrik path'lerden ÖNCE
// tanımlanmalı. Örnek: "/api/users/me" → "/api/users/{username}" öncesinde,
// yoksa router "me" kelimesini bir username olarak yorumlar.
func initRoutes(mux *http.ServeMux, h *Handlers, authMw *middleware.AuthMiddleware) {
	// Middleware chain helper
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"ok","service":"exposia"}`)
	})

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/auth/signup", h.Auth.Signup)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.HandleFunc("GET /api/auth/verify-email", h.Auth.VerifyEmail)

	// Users
	mux.Handle("GET /api/users/me", auth(h.Auth.Me))
	mux.Handle("PATCH /api/users/me/profile", auth(h.User.UpdateProfile))
	mux.Handle("GET /api/users/{username}", auth(h.User.GetByUsername))
	mux.Handle("GET /api/users/{id}/posts", auth(h.Post.ListByAuthor))

	// Posts
	mux.Handle("GET /api/posts", auth(h.Post.Feed))
	mux.Handle("POST /api/posts", auth(h.Post.Create))
	mux.Handle("GET /api/posts/{id}", auth(h.Post.Get))
	mux.Handle("PATCH /api/posts/{id}", auth(h.Post.Update))
	mux.Handle("DELETE /api/posts/{id}", auth(h.Post.Delete))

	// Comments
	mux.Handle("GET /api/posts/{id}/comments", auth(h.Comment.List))
	mux.Handle("POST /api/posts/{id}/comments", auth(h.Comment.Create))
	mux.Handle("DELETE /api/comments/{id}", auth(h.Comment.Delete))

	// Reactions
	mux.Handle("GET /api/posts/{id}/reactions", auth(h.Reaction.List))
	mux.Handle("POST /api/posts/{id}/reactions", auth(h.Reaction.React))
	mux.Handle("DELETE /api/posts/{id}/reactions", auth(h.Reaction.Unreact))

	// Messages
	mux.Handle("POST /api/messages", auth(h.Message.Send))
	mux.Handle("GET /api/messages/unread/count", auth(h.Message.UnreadCount))
	mux.Handle("GET /api/messages/{userId}", auth(h.Message.GetConversation))
	mux.Handle("POST /api/messages/{id}/read", auth(h.Message.MarkRead))
	mux.Handle("GET /api/conversations", auth(h.Message.ListConversations))

	// Notifications
	mux.Handle("GET /api/notifications", auth(h.Notification.List))
	mux.Handle("GET /api/notifications/unread/count", auth(h.Notification.UnreadCount))
	mux.Handle("POST /api/notifications/read-all", auth(h.Notification.MarkAllRead))
	mux.Handle("POST /api/notifications/{id}/read", auth(h.Notification.MarkRead))

	// WebSocket — token query parameter ile authenticate edilir.
	//
	// Neden auth middleware kullanmıyoruz?
	// WebSocket upgrade sırasında tarayıcılar custom HTTP header gönderemez.
	// Bu yüzden JWT token query parameter olarak gönderilir:
	//   ws://server/ws?token=JWT_TOKEN
	// WS handler kendi içinde token doğrulaması yapar.
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)
}
