package services

// Test fake'leri: Repository interface'lerinin in-memory implementasyonları
// ve yayınlanan event'leri kaydeden bir EventPublisher. Service testleri
// DB'ye ve gerçek WebSocket bağlantısına ihtiyaç duymadan çalışır.

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Naitikhacke/Exposia/models"
	"github.com/Naitikhacke/Exposia/pkg"
	"github.com/Naitikhacke/Exposia/ws"
)

// ─── fakeHub ───

// publishedEvent, fakeHub'ın kaydettiği tek bir yayın.
// target: "all" ya da oda adı (BroadcastToUser, user:<id> odası olarak kaydedilir).
type publishedEvent struct {
	target string
	event  ws.Event
}

type fakeHub struct {
	mu     sync.Mutex
	events []publishedEvent
	online map[string]bool
}

func newFakeHub() *fakeHub {
	return &fakeHub{online: make(map[string]bool)}
}

func (h *fakeHub) BroadcastToAll(event ws.Event) { h.record("all", event) }

func (h *fakeHub) BroadcastToRoom(roomID string, event ws.Event) { h.record(roomID, event) }

func (h *fakeHub) BroadcastToUser(userID string, event ws.Event) {
	h.record(ws.UserRoom(userID), event)
}

func (h *fakeHub) IsUserOnline(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.online[userID]
}

func (h *fakeHub) record(target string, event ws.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, publishedEvent{target: target, event: event})
}

func (h *fakeHub) published() []publishedEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]publishedEvent(nil), h.events...)
}

// ─── fakeUserRepo ───

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

// addUser, testlerin doğrudan kullanıcı seed'lemesi için kısayol.
func (r *fakeUserRepo) addUser(id, username string) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	user := &models.User{
		ID:        id,
		Username:  username,
		Email:     username + "@example.com",
		Name:      username,
		CreatedAt: time.Now(),
	}
	r.users[id] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return pkg.ErrAlreadyExists
		}
	}

	r.nextID++
	user.ID = fmt.Sprintf("u%d", r.nextID)
	user.CreatedAt = time.Now()

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return pkg.ErrNotFound
	}
	stored.Name = user.Name
	stored.Bio = user.Bio
	stored.AvatarURL = user.AvatarURL
	return nil
}

func (r *fakeUserRepo) VerifyEmail(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.VerifyToken != nil && *user.VerifyToken == token {
			user.EmailVerified = true
			user.VerifyToken = nil
			return nil
		}
	}
	return pkg.ErrNotFound
}

// verifyTokenOf, seed edilen kullanıcının doğrulama token'ını okur.
func (r *fakeUserRepo) verifyTokenOf(userID string) *string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userID]; ok {
		return user.VerifyToken
	}
	return nil
}

// ─── fakeSessionRepo ───

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session // refresh token → session
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	session.ID = fmt.Sprintf("s%d", r.nextID)
	session.CreatedAt = time.Now()

	stored := *session
	r.sessions[session.RefreshToken] = &stored
	return nil
}

func (r *fakeSessionRepo) GetByRefreshToken(_ context.Context, refreshToken string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[refreshToken]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) DeleteByRefreshToken(_ context.Context, refreshToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[refreshToken]; !ok {
		return pkg.ErrNotFound
	}
	delete(r.sessions, refreshToken)
	return nil
}

func (r *fakeSessionRepo) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	now := time.Now()
	for token, session := range r.sessions {
		if now.After(session.ExpiresAt) {
			delete(r.sessions, token)
			deleted++
		}
	}
	return deleted, nil
}

// ─── fakePostRepo ───

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*models.Post)}
}

func (r *fakePostRepo) addPost(id, authorID string) *models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	post := &models.Post{
		ID:        id,
		AuthorID:  authorID,
		Type:      models.PostTypeMicro,
		Content:   "content of " + id,
		Published: true,
		CreatedAt: time.Now(),
	}
	r.posts[id] = post
	return post
}

func (r *fakePostRepo) Create(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = fmt.Sprintf("p%d", len(r.posts)+1)
	post.CreatedAt = time.Now()
	stored := *post
	r.posts[post.ID] = &stored
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) ListFeed(_ context.Context, page, limit int) (*models.PostPage, error) {
	return &models.PostPage{Page: page, Limit: limit}, nil
}

func (r *fakePostRepo) ListByAuthor(_ context.Context, _ string, page, limit int) (*models.PostPage, error) {
	return &models.PostPage{Page: page, Limit: limit}, nil
}

func (r *fakePostRepo) Update(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID]; !ok {
		return pkg.ErrNotFound
	}
	stored := *post
	r.posts[post.ID] = &stored
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return pkg.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) IncrementViews(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post, ok := r.posts[id]; ok {
		post.Views++
	}
	return nil
}

// ─── fakeCommentRepo ───

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*models.Comment
	nextID   int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*models.Comment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	comment.ID = fmt.Sprintf("c%d", r.nextID)
	comment.CreatedAt = time.Now()

	stored := *comment
	r.comments[comment.ID] = &stored
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id string) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	comment, ok := r.comments[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	copied := *comment
	return &copied, nil
}

func (r *fakeCommentRepo) ListByPostID(_ context.Context, postID string) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []models.Comment
	for _, comment := range r.comments {
		if comment.PostID == postID {
			result = append(result, *comment)
		}
	}
	return result, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return pkg.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

// ─── fakeMessageRepo ───

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*models.Message // insertion order = created_at order
	nextID   int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(_ context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	message.ID = fmt.Sprintf("m%d", r.nextID)
	message.CreatedAt = time.Now()

	stored := *message
	r.messages = append(r.messages, &stored)
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id string) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message := r.findLocked(id); message != nil {
		copied := *message
		return &copied, nil
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, id, receiverID string) (*models.Message, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	message := r.findLocked(id)
	if message == nil {
		return nil, false, pkg.ErrNotFound
	}
	if message.ReceiverID != receiverID {
		return nil, false, pkg.ErrForbidden
	}
	if message.ReadAt != nil {
		copied := *message
		return &copied, false, nil
	}

	now := time.Now()
	message.ReadAt = &now
	copied := *message
	return &copied, true, nil
}

func (r *fakeMessageRepo) ListConversation(_ context.Context, userID, otherID, _ string, limit int) (*models.MessagePage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Gerçek repo DESC döner — fake de aynı sözleşmeyi uygular.
	var result []models.Message
	for i := len(r.messages) - 1; i >= 0 && len(result) < limit; i-- {
		m := r.messages[i]
		between := (m.SenderID == userID && m.ReceiverID == otherID) ||
			(m.SenderID == otherID && m.ReceiverID == userID)
		if between {
			result = append(result, *m)
		}
	}
	return &models.MessagePage{Messages: result}, nil
}

func (r *fakeMessageRepo) ListConversations(_ context.Context, _ string) ([]models.Conversation, error) {
	return nil, nil
}

func (r *fakeMessageRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, m := range r.messages {
		if m.ReceiverID == userID && m.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func (r *fakeMessageRepo) findLocked(id string) *models.Message {
	for _, m := range r.messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// ─── fakeNotificationRepo ───

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
	nextID        int
	failCreate    bool // persist hatası simülasyonu
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failCreate {
		return fmt.Errorf("simulated write failure")
	}

	r.nextID++
	notification.ID = fmt.Sprintf("n%d", r.nextID)
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *fakeNotificationRepo) ListByUserID(_ context.Context, userID string, _ int) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].UserID == userID {
			r.notifications[i].Read = true
			return nil
		}
	}
	return pkg.ErrNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].UserID == userID {
			r.notifications[i].Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) all() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Notification(nil), r.notifications...)
}

// ─── fakeReactionRepo ───

type fakeReactionRepo struct {
	mu        sync.Mutex
	reactions map[string]*models.Reaction // postID|userID → reaction
	nextID    int
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{reactions: make(map[string]*models.Reaction)}
}

func reactionKey(postID, userID string) string { return postID + "|" + userID }

func (r *fakeReactionRepo) Upsert(_ context.Context, reaction *models.Reaction) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := reactionKey(reaction.PostID, reaction.UserID)
	if existing, ok := r.reactions[key]; ok {
		existing.Type = reaction.Type
		reaction.ID = existing.ID
		reaction.CreatedAt = existing.CreatedAt
		return false, nil
	}

	r.nextID++
	reaction.ID = fmt.Sprintf("r%d", r.nextID)
	reaction.CreatedAt = time.Now()
	stored := *reaction
	r.reactions[key] = &stored
	return true, nil
}

func (r *fakeReactionRepo) Delete(_ context.Context, postID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := reactionKey(postID, userID)
	if _, ok := r.reactions[key]; !ok {
		return pkg.ErrNotFound
	}
	delete(r.reactions, key)
	return nil
}

func (r *fakeReactionRepo) ListByPostID(_ context.Context, postID string) ([]models.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []models.Reaction
	for _, reaction := range r.reactions {
		if reaction.PostID == postID {
			result = append(result, *reaction)
		}
	}
	return result, nil
}
