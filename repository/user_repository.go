// Package repository, veritabanı erişim katmanını tanımlar.
//
// Repository pattern: Her entity için bir interface + SQLite implementasyonu.
// Service katmanı sadece interface'leri görür — testlerde fake repository
// kullanılabilir, DB değişse bile service kodu etkilenmez.
package repository

import (
	"context"

	"github.com/Naitikhacke/Exposia/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	// VerifyEmail, verify token'ı eşleşen kullanıcıyı doğrulanmış işaretler
	// ve token'ı temizler. Token bilinmiyorsa pkg.ErrNotFound döner.
	VerifyEmail(ctx context.Context, token string) error
}
