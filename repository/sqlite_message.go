package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Naitikhacke/Exposia/models"
	"github.com/Naitikhacke/Exposia/pkg"
)

// sqliteMessageRepo, MessageRepository interface'inin SQLite implementasyonu.
type sqliteMessageRepo struct {
	db *sql.DB
}

// NewSQLiteMessageRepo, constructor — interface döner.
func NewSQLiteMessageRepo(db *sql.DB) MessageRepository {
	return &sqliteMessageRepo{db: db}
}

func (r *sqliteMessageRepo) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (id, sender_id, receiver_id, content)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		message.SenderID,
		message.ReceiverID,
		message.Content,
	).Scan(&message.ID, &message.CreatedAt)

	if err != nil {
		// FK ihlali: alıcı diye bir kullanıcı yok.
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return pkg.ErrNotFound
		}
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

func (r *sqliteMessageRepo) GetByID(ctx context.Context, id string) (*models.Message, error) {
	query := `
		SELECT m.id, m.sender_id, m.receiver_id, m.content, m.read_at, m.created_at,
		       u.id, u.username, u.name, u.avatar_url
		FROM messages m
		LEFT JOIN users u ON m.sender_id = u.id
		WHERE m.id = ?`

	message, err := scanMessage(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message by id: %w", err)
	}

	return message, nil
}

func (r *sqliteMessageRepo) MarkRead(ctx context.Context, id, receiverID string) (*models.Message, bool, error) {
	message, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	// Sadece alıcı okundu işaretleyebilir.
	if message.ReceiverID != receiverID {
		return nil, false, pkg.ErrForbidden
	}

	// read_at IS NULL koşulu monotonikliği SQL seviyesinde garanti eder:
	// iki eşzamanlı message:read gelse bile timestamp bir kez yazılır,
	// ikinci UPDATE 0 satır etkiler.
	query := `
		UPDATE messages
		SET read_at = CURRENT_TIMESTAMP
		WHERE id = ? AND read_at IS NULL
		RETURNING read_at`

	err = r.db.QueryRowContext(ctx, query, id).Scan(&message.ReadAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Zaten okunmuş — no-op, mevcut read_at korunur.
		return message, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to mark message read: %w", err)
	}

	return message, true, nil
}

// ListConversation, iki kullanıcı arasındaki mesajları cursor-based
// pagination ile getirir. Her iki yöndeki mesajlar dahildir.
func (r *sqliteMessageRepo) ListConversation(ctx context.Context, userID, otherID, beforeID string, limit int) (*models.MessagePage, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	base := `
		SELECT m.id, m.sender_id, m.receiver_id, m.content, m.read_at, m.created_at,
		       u.id, u.username, u.name, u.avatar_url
		FROM messages m
		LEFT JOIN users u ON m.sender_id = u.id
		WHERE ((m.sender_id = ? AND m.receiver_id = ?) OR (m.sender_id = ? AND m.receiver_id = ?))`

	var query string
	var args []any

	if beforeID == "" {
		query = base + ` ORDER BY m.created_at DESC LIMIT ?`
		args = []any{userID, otherID, otherID, userID, limit + 1}
	} else {
		// Subquery cursor'ın created_at değerini bulur; ana sorgu
		// bu tarihten önceki mesajları getirir.
		query = base + `
		  AND m.created_at < (SELECT created_at FROM messages WHERE id = ?)
		ORDER BY m.created_at DESC LIMIT ?`
		args = []any{userID, otherID, otherID, userID, beforeID, limit + 1}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, *message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	// limit+1 satır istendi — fazlası varsa devamı var demektir.
	hasMore := len(messages) > limit
	if hasMore {
		messages = messages[:limit]
	}

	return &models.MessagePage{Messages: messages, HasMore: hasMore}, nil
}

// ListConversations, kullanıcının mesajlaştığı her kişi için son mesajı
// ve okunmamış sayısını döner (mesaj listesi ekranı).
//
// conversations tablosu yoktur — liste messages'tan türetilir:
// karşı taraf bazında gruplanır, her grubun en yeni mesajı seçilir.
func (r *sqliteMessageRepo) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	query := `
		SELECT m.id, m.sender_id, m.receiver_id, m.content, m.read_at, m.created_at,
		       u.id, u.username, u.name, u.avatar_url,
		       (SELECT COUNT(*) FROM messages um
		        WHERE um.sender_id = u.id AND um.receiver_id = ? AND um.read_at IS NULL)
		FROM messages m
		JOIN users u ON u.id = CASE WHEN m.sender_id = ? THEN m.receiver_id ELSE m.sender_id END
		WHERE m.id IN (
			SELECT id FROM messages m2
			WHERE m2.sender_id = ? OR m2.receiver_id = ?
			GROUP BY CASE WHEN m2.sender_id = ? THEN m2.receiver_id ELSE m2.sender_id END
			HAVING m2.created_at = MAX(m2.created_at)
		)
		ORDER BY m.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, userID, userID, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	conversations := []models.Conversation{}
	for rows.Next() {
		var conv models.Conversation
		var msg models.Message

		if err := rows.Scan(
			&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content, &msg.ReadAt, &msg.CreatedAt,
			&conv.OtherUser.ID, &conv.OtherUser.Username, &conv.OtherUser.Name, &conv.OtherUser.AvatarURL,
			&conv.UnreadCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversation row: %w", err)
		}

		conv.LastMessage = msg
		conversations = append(conversations, conv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversation rows: %w", err)
	}

	return conversations, nil
}

func (r *sqliteMessageRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE receiver_id = ? AND read_at IS NULL`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

// scanMessage, mesaj satırını gönderen özetiyle birlikte okur.
func scanMessage(row rowScanner) (*models.Message, error) {
	message := &models.Message{}
	var sender models.UserSummary
	var senderID sql.NullString

	err := row.Scan(
		&message.ID, &message.SenderID, &message.ReceiverID, &message.Content,
		&message.ReadAt, &message.CreatedAt,
		&senderID, &sender.Username, &sender.Name, &sender.AvatarURL,
	)
	if err != nil {
		return nil, err
	}

	if senderID.Valid {
		sender.ID = senderID.String
		message.Sender = &sender
	}

	return message, nil
}
