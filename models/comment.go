package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Comment, bir gönderi yorumunu temsil eder (comments tablosu).
// ParentID self-reference ile threaded reply desteği sağlar:
// nil → kök yorum, dolu → başka bir yorumun cevabı.
// Bu core kapsamında yorumlar oluşturulduktan sonra immutable'dır.
type Comment struct {
	ID        string       `json:"id"`
	PostID    string       `json:"post_id"`
	AuthorID  string       `json:"author_id"`
	Content   string       `json:"content"`
	ParentID  *string      `json:"parent_id"`
	CreatedAt time.Time    `json:"created_at"`
	Author    *UserSummary `json:"author,omitempty"` // JOIN ile gelen yazar özeti
}

// CreateCommentRequest, yeni yorum oluşturma isteği.
// Hem REST endpoint'i hem ws `comment:create` event'i bu şekli kullanır —
// iki giriş noktası aynı service path'inden geçer.
type CreateCommentRequest struct {
	PostID   string  `json:"post_id"`
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id"`
}

// Validate, CreateCommentRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateCommentRequest) Validate() error {
	if strings.TrimSpace(r.PostID) == "" {
		return fmt.Errorf("post_id is required")
	}

	r.Content = strings.TrimSpace(r.Content)
	if r.Content == "" {
		return fmt.Errorf("comment content is required")
	}
	if utf8.RuneCountInString(r.Content) > 2000 {
		return fmt.Errorf("comment content must be at most 2000 characters")
	}

	return nil
}
