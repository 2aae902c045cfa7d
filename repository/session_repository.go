package repository

import (
	"context"

	"github.com/Naitikhacke/Exposia/models"
)

// SessionRepository, refresh token oturumları için interface.
// Her login bir kayıt oluşturur; refresh eski kaydı silip yenisini yazar
// (token rotation), logout kaydı siler.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByRefreshToken(ctx context.Context, refreshToken string) (*models.Session, error)
	DeleteByRefreshToken(ctx context.Context, refreshToken string) error
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
