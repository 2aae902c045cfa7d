// Exposia — sosyal ağ backend'i: REST API + gerçek zamanlı WebSocket katmanı.
//
// Bu dosya uygulamanın composition root'udur: tüm bağımlılıklar burada
// elle oluşturulur ve birbirine bağlanır (manual dependency injection).
// DI framework'ü yok — Go'da küçük/orta projelerde elle wire-up hem daha
// okunaklı hem de compile-time güvenlidir.
//
// Wire-up sırası önemlidir:
//
//	config → database → repositories → hub → services → handlers → routes
//
// Her katman bir sonrakinin constructor'ına parametre olarak girer.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/Naitikhacke/Exposia/config"
	"github.com/Naitikhacke/Exposia/database"
	"github.com/Naitikhacke/Exposia/handlers"
	"github.com/Naitikhacke/Exposia/middleware"
	"github.com/Naitikhacke/Exposia/pkg/email"
	"github.com/Naitikhacke/Exposia/pkg/ratelimit"
	"github.com/Naitikhacke/Exposia/repository"
	"github.com/Naitikhacke/Exposia/services"
	"github.com/Naitikhacke/Exposia/ws"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// ---- Config ----
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] config load failed: %v", err)
	}

	// ---- Database ----
	// Embed FS "migrations/*.sql" pattern'iyle dolduğu için dosyalar
	// "migrations/" prefix'i altında durur. database.New ise FS root'unu
	// okur — fs.Sub ile alt dizine iniyoruz.
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] migrations fs: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] database init failed: %v", err)
	}
	defer db.Close()

	// ---- Repositories ----
	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	sessionRepo := repository.NewSQLiteSessionRepo(db.Conn)
	postRepo := repository.NewSQLitePostRepo(db.Conn)
	commentRepo := repository.NewSQLiteCommentRepo(db.Conn)
	messageRepo := repository.NewSQLiteMessageRepo(db.Conn)
	reactionRepo := repository.NewSQLiteReactionRepo(db.Conn)
	notificationRepo := repository.NewSQLiteNotificationRepo(db.Conn)

	// ---- WebSocket Hub ----
	hub := ws.NewHub()

	// ---- Email (opsiyonel) ----
	// API key yoksa mailer nil kalır — signup email doğrulaması atlanır.
	var mailer email.Mailer
	if cfg.Email.ResendAPIKey != "" {
		mailer = email.NewResendMailer(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
		log.Println("[main] email verification enabled")
	} else {
		log.Println("[main] RESEND_API_KEY not set, email verification disabled")
	}

	// ---- Services ----
	authService := services.NewAuthService(
		userRepo, sessionRepo, mailer,
		cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry,
	)
	userService := services.NewUserService(userRepo)
	notificationService := services.NewNotificationService(notificationRepo, hub)
	postService := services.NewPostService(postRepo, hub)
	commentService := services.NewCommentService(commentRepo, postRepo, hub, notificationService)
	messageService := services.NewMessageService(messageRepo, userRepo, hub, notificationService)
	reactionService := services.NewReactionService(reactionRepo, postRepo, notificationService)

	// Hub callback'leri service'lerden SONRA bağlanır — callback'ler
	// service'lere ihtiyaç duyar, service'ler ise hub'a. Döngü, hub'ın
	// önce boş oluşturulup sonra callback almasıyla kırılır.
	initHubCallbacks(hub, commentService, messageService)
	go hub.Run()

	// ---- Rate limiter ----
	// 2 dakikalık pencerede 5 başarısız login denemesi → geçici blok.
	loginLimiter := ratelimit.NewLoginRateLimiter(5, 2*time.Minute)
	defer loginLimiter.Stop()

	// ---- Handlers ----
	h := &Handlers{
		Auth:         handlers.NewAuthHandler(authService, loginLimiter),
		User:         handlers.NewUserHandler(userService),
		Post:         handlers.NewPostHandler(postService),
		Comment:      handlers.NewCommentHandler(commentService),
		Reaction:     handlers.NewReactionHandler(reactionService),
		Message:      handlers.NewMessageHandler(messageService),
		Notification: handlers.NewNotificationHandler(notificationService),
		WS:           ws.NewHandler(hub, authService),
	}

	authMw := middleware.NewAuthMiddleware(authService, userRepo)

	// ---- Routes ----
	mux := http.NewServeMux()
	initRoutes(mux, h, authMw)

	// ---- CORS ----
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORS.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(mux)

	// ---- HTTP Server ----
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      corsHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: SIGINT/SIGTERM gelince önce yeni bağlantıları
	// durdur, sonra aktif olanların bitmesini bekle (5 saniye limit).
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("[main] shutdown signal received")

		// Önce WS oturumlarını kapat — client'lar reconnect döngüsüne girer.
		hub.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("[main] server shutdown error: %v", err)
		}
	}()

	log.Printf("[main] exposia listening on %s", cfg.Server.Addr())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("[main] server error: %v", err)
	}

	log.Println("[main] server stopped")
}
