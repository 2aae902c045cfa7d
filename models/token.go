package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims, JWT access token'ın içindeki veriler (payload).
//
// Bu struct models paketinde tanımlanır çünkü birden fazla katman
// (services, ws, middleware) tarafından kullanılır — her katman models'e
// bağımlı olabilir, circular dependency oluşmaz.
type TokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Session, bir refresh token kaydını temsil eder (sessions tablosu).
// Access token kısa ömürlüdür; süresi dolunca client refresh token ile
// yeni bir çift alır. Logout refresh token'ı siler.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}
