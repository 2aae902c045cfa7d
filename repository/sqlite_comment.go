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

// sqliteCommentRepo, CommentRepository interface'inin SQLite implementasyonu.
type sqliteCommentRepo struct {
	db *sql.DB
}

// NewSQLiteCommentRepo, constructor — interface döner.
func NewSQLiteCommentRepo(db *sql.DB) CommentRepository {
	return &sqliteCommentRepo{db: db}
}

func (r *sqliteCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, author_id, content, parent_id)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		comment.PostID,
		comment.AuthorID,
		comment.Content,
		comment.ParentID,
	).Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		// FK ihlali: gönderi veya parent yorum yok.
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return pkg.ErrNotFound
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *sqliteCommentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.content, c.parent_id, c.created_at,
		       u.id, u.username, u.name, u.avatar_url
		FROM comments c
		LEFT JOIN users u ON c.author_id = u.id
		WHERE c.id = ?`

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}

	return comment, nil
}

// ListByPostID, gönderinin tüm yorumlarını eskiden yeniye sıralı döner.
// Thread yapısı (parent_id) frontend tarafında kurulur — düz liste yeterlidir.
func (r *sqliteCommentRepo) ListByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.content, c.parent_id, c.created_at,
		       u.id, u.username, u.name, u.avatar_url
		FROM comments c
		LEFT JOIN users u ON c.author_id = u.id
		WHERE c.post_id = ?
		ORDER BY c.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, *comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

func (r *sqliteCommentRepo) Delete(ctx context.Context, id string) error {
	// ON DELETE CASCADE: cevap yorumlar da silinir.
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

// scanComment, yorum satırını yazar özetiyle birlikte okur.
func scanComment(row rowScanner) (*models.Comment, error) {
	comment := &models.Comment{}
	var author models.UserSummary
	var authorID sql.NullString

	err := row.Scan(
		&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Content,
		&comment.ParentID, &comment.CreatedAt,
		&authorID, &author.Username, &author.Name, &author.AvatarURL,
	)
	if err != nil {
		return nil, err
	}

	if authorID.Valid {
		author.ID = authorID.String
		comment.Author = &author
	}

	return comment, nil
}
