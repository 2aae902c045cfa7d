// Package models, uygulamanın domain modellerini tanımlar.
//
// Her model veritabanındaki bir tablonun Go karşılığıdır ve aynı zamanda
// API'den gelen/giden verilerin şeklini belirler. `json:"..."` tag'leri
// struct field'larının JSON'a nasıl serialize edileceğini söyler.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// User, bir Exposia kullanıcısını temsil eder.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PasswordHash  string    `json:"-"` // json:"-" → API response'a DAHİL ETME
	AvatarURL     *string   `json:"avatar_url"`
	Bio           *string   `json:"bio"`
	EmailVerified bool      `json:"email_verified"`
	VerifyToken   *string   `json:"-"` // E-posta doğrulama token'ı — API'ye sızmaz
	CreatedAt     time.Time `json:"created_at"`
}

// UserSummary, başka entity'lere gömülen minimal yazar bilgisi.
// Post, Comment ve Message response'larında JOIN ile doldurulur —
// frontend tek istekle içerik + yazar bilgisini alır.
type UserSummary struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// Summary, User'dan UserSummary üretir.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// SignupRequest, kayıt olurken frontend'den gelen veri.
// PasswordHash yerine Password alınır — hash'leme service katmanında yapılır.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate, SignupRequest'in geçerli olup olmadığını kontrol eder.
// Kurallar (original API ile aynı):
//   - Username: 3-30 karakter, alfanumerik + alt çizgi
//   - Email: geçerli format
//   - Password: minimum 8 karakter
//   - Name: 1-100 karakter
func (r *SignupRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	usernameLen := utf8.RuneCountInString(r.Username)
	if usernameLen < 3 || usernameLen > 30 {
		return fmt.Errorf("username must be between 3 and 30 characters")
	}
	if !usernameRegex.MatchString(r.Username) {
		return fmt.Errorf("username can only contain letters, numbers, and underscores")
	}

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email address")
	}

	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("name must be between 1 and 100 characters")
	}

	return nil
}

// LoginRequest, giriş yaparken frontend'den gelen veri.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, LoginRequest'in geçerli olup olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// UpdateProfileRequest, profil güncellemesi için.
// Pointer alanlar nil ise o alan değiştirilmez (partial update).
type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// Validate, UpdateProfileRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateProfileRequest) Validate() error {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		nameLen := utf8.RuneCountInString(*r.Name)
		if nameLen < 1 || nameLen > 100 {
			return fmt.Errorf("name must be between 1 and 100 characters")
		}
	}
	if r.Bio != nil && utf8.RuneCountInString(*r.Bio) > 500 {
		return fmt.Errorf("bio must be at most 500 characters")
	}
	return nil
}
