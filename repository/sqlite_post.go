package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Naitikhacke/Exposia/models"
	"github.com/Naitikhacke/Exposia/pkg"
)

// sqlitePostRepo, PostRepository interface'inin SQLite implementasyonu.
type sqlitePostRepo struct {
	db *sql.DB
}

// NewSQLitePostRepo, constructor — interface döner.
func NewSQLitePostRepo(db *sql.DB) PostRepository {
	return &sqlitePostRepo{db: db}
}

// postSelect, gönderiyi yazar özeti ve sayaçlarla birlikte getiren
// ortak SELECT parçası. Sayaçlar correlated subquery ile hesaplanır —
// ayrı counter kolonu tutulmaz, sayı her zaman günceldir.
const postSelect = `
	SELECT p.id, p.author_id, p.type, p.title, p.content, p.published, p.views,
	       p.created_at, p.updated_at,
	       u.id, u.username, u.name, u.avatar_url,
	       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id),
	       (SELECT COUNT(*) FROM reactions r WHERE r.post_id = p.id)
	FROM posts p
	LEFT JOIN users u ON p.author_id = u.id`

func (r *sqlitePostRepo) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, author_id, type, title, content, published)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?)
		RETURNING id, views, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		post.AuthorID,
		post.Type,
		post.Title,
		post.Content,
		post.Published,
	).Scan(&post.ID, &post.Views, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *sqlitePostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	row := r.db.QueryRowContext(ctx, postSelect+` WHERE p.id = ?`, id)

	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

func (r *sqlitePostRepo) ListFeed(ctx context.Context, page, limit int) (*models.PostPage, error) {
	return r.list(ctx, `WHERE p.published = 1`, nil, page, limit)
}

func (r *sqlitePostRepo) ListByAuthor(ctx context.Context, authorID string, page, limit int) (*models.PostPage, error) {
	return r.list(ctx, `WHERE p.published = 1 AND p.author_id = ?`, []any{authorID}, page, limit)
}

func (r *sqlitePostRepo) list(ctx context.Context, where string, args []any, page, limit int) (*models.PostPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	// Toplam sayı pagination metadata'sı için ayrı sorguyla alınır.
	countQuery := `SELECT COUNT(*) FROM posts p ` + where
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	query := postSelect + ` ` + where + ` ORDER BY p.created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(append([]any{}, args...), limit, offset)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return &models.PostPage{Posts: posts, Page: page, Limit: limit, Total: total}, nil
}

func (r *sqlitePostRepo) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = ?, content = ?, published = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, post.Title, post.Content, post.Published, post.ID)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
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

func (r *sqlitePostRepo) Delete(ctx context.Context, id string) error {
	// ON DELETE CASCADE: yorumlar ve tepkiler DB tarafında silinir.
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
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

func (r *sqlitePostRepo) IncrementViews(ctx context.Context, id string) error {
	// Atomik artış — read-modify-write yarışı olmaz.
	if _, err := r.db.ExecContext(ctx, `UPDATE posts SET views = views + 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to increment post views: %w", err)
	}
	return nil
}

// rowScanner, *sql.Row ve *sql.Rows'un ortak Scan yüzeyi.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanPost, postSelect kolon sırasıyla tek bir gönderi satırını okur.
func scanPost(row rowScanner) (*models.Post, error) {
	post := &models.Post{}
	var author models.UserSummary
	var authorID sql.NullString

	err := row.Scan(
		&post.ID, &post.AuthorID, &post.Type, &post.Title, &post.Content,
		&post.Published, &post.Views, &post.CreatedAt, &post.UpdatedAt,
		&authorID, &author.Username, &author.Name, &author.AvatarURL,
		&post.CommentCount, &post.ReactionCount,
	)
	if err != nil {
		return nil, err
	}

	if authorID.Valid {
		author.ID = authorID.String
		post.Author = &author
	}

	return post, nil
}
