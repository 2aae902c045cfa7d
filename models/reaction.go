package models

import "time"

// ReactionType, bir gönderiye verilen tepkinin türünü temsil eder.
type ReactionType string

// İzin verilen ReactionType değerleri.
const (
	ReactionLike       ReactionType = "LIKE"
	ReactionLove       ReactionType = "LOVE"
	ReactionLaugh      ReactionType = "LAUGH"
	ReactionInsightful ReactionType = "INSIGHTFUL"
	ReactionCelebrate  ReactionType = "CELEBRATE"
)

// ValidReactionType, verilen değerin tanımlı bir ReactionType olup
// olmadığını döner.
func ValidReactionType(t ReactionType) bool {
	switch t {
	case ReactionLike, ReactionLove, ReactionLaugh, ReactionInsightful, ReactionCelebrate:
		return true
	}
	return false
}

// Reaction, bir kullanıcının bir gönderiye tepkisini temsil eder
// (reactions tablosu). UNIQUE(post_id, user_id) — kullanıcı başına
// gönderi başına tek tepki; tekrar tepki vermek türü günceller.
type Reaction struct {
	ID        string       `json:"id"`
	PostID    string       `json:"post_id"`
	UserID    string       `json:"user_id"`
	Type      ReactionType `json:"type"`
	CreatedAt time.Time    `json:"created_at"`
}

// ReactRequest, gönderiye tepki verme isteği.
type ReactRequest struct {
	Type ReactionType `json:"type"`
}
