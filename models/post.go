package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// PostType, bir gönderinin türünü temsil eder.
// Go'da enum yoktur — typed constant'lar kullanılır.
type PostType string

// İzin verilen PostType değerleri.
const (
	PostTypeMicro   PostType = "MICRO"   // Kısa metin gönderisi
	PostTypeArticle PostType = "ARTICLE" // Uzun biçimli yazı
	PostTypeProject PostType = "PROJECT" // Proje tanıtımı
	PostTypeReel    PostType = "REEL"    // Kısa video
)

// ValidPostType, verilen değerin tanımlı bir PostType olup olmadığını döner.
func ValidPostType(t PostType) bool {
	switch t {
	case PostTypeMicro, PostTypeArticle, PostTypeProject, PostTypeReel:
		return true
	}
	return false
}

// Post, bir gönderiyi temsil eder (posts tablosu).
// Author JOIN ile, sayaçlar subquery ile doldurulur.
type Post struct {
	ID            string       `json:"id"`
	AuthorID      string       `json:"author_id"`
	Type          PostType     `json:"type"`
	Title         *string      `json:"title"`
	Content       string       `json:"content"`
	Published     bool         `json:"published"`
	Views         int64        `json:"views"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Author        *UserSummary `json:"author,omitempty"`
	CommentCount  int64        `json:"comment_count"`
	ReactionCount int64        `json:"reaction_count"`
}

// PostPage, offset-based pagination sonucu.
// Feed ve kullanıcı gönderileri sayfa numarası ile gezilir.
type PostPage struct {
	Posts []Post `json:"posts"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Total int64  `json:"total"`
}

// CreatePostRequest, yeni gönderi oluşturma isteği.
type CreatePostRequest struct {
	Type    PostType `json:"type"`
	Title   *string  `json:"title"`
	Content string   `json:"content"`
}

// Validate, CreatePostRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreatePostRequest) Validate() error {
	if !ValidPostType(r.Type) {
		return fmt.Errorf("type must be one of MICRO, ARTICLE, PROJECT, REEL")
	}

	r.Content = strings.TrimSpace(r.Content)
	if r.Content == "" {
		return fmt.Errorf("content is required")
	}
	if utf8.RuneCountInString(r.Content) > 50000 {
		return fmt.Errorf("content must be at most 50000 characters")
	}

	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		if utf8.RuneCountInString(*r.Title) > 200 {
			return fmt.Errorf("title must be at most 200 characters")
		}
	}

	return nil
}

// UpdatePostRequest, gönderi düzenleme isteği.
// Pointer alanlar nil ise o alan değiştirilmez.
type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Validate, UpdatePostRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdatePostRequest) Validate() error {
	if r.Content != nil {
		*r.Content = strings.TrimSpace(*r.Content)
		if *r.Content == "" {
			return fmt.Errorf("content cannot be empty")
		}
		if utf8.RuneCountInString(*r.Content) > 50000 {
			return fmt.Errorf("content must be at most 50000 characters")
		}
	}
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		if utf8.RuneCountInString(*r.Title) > 200 {
			return fmt.Errorf("title must be at most 200 characters")
		}
	}
	return nil
}
