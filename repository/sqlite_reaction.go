package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Naitikhacke/Exposia/database"
	"github.com/Naitikhacke/Exposia/models"
	"github.com/Naitikhacke/Exposia/pkg"
)

// sqliteReactionRepo, ReactionRepository interface'inin SQLite implementasyonu.
type sqliteReactionRepo struct {
	db *sql.DB
}

// NewSQLiteReactionRepo, constructor — interface döner.
func NewSQLiteReactionRepo(db *sql.DB) ReactionRepository {
	return &sqliteReactionRepo{db: db}
}

func (r *sqliteReactionRepo) Upsert(ctx context.Context, reaction *models.Reaction) (bool, error) {
	var created bool

	// Var mı kontrolü + upsert aynı transaction'da yapılır — created bilgisi
	// upsert'ten sonra ayırt edilemez (her iki durumda da satır döner) ve iki
	// statement arasına başka bir yazma girmemelidir.
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var existingID string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM reactions WHERE post_id = ? AND user_id = ?`,
			reaction.PostID, reaction.UserID,
		).Scan(&existingID)

		created = err == sql.ErrNoRows
		if err != nil && !created {
			return fmt.Errorf("failed to check existing reaction: %w", err)
		}

		query := `
			INSERT INTO reactions (id, post_id, user_id, type)
			VALUES (lower(hex(randomblob(8))), ?, ?, ?)
			ON CONFLICT (post_id, user_id) DO UPDATE SET type = excluded.type
			RETURNING id, created_at`

		err = tx.QueryRowContext(ctx, query,
			reaction.PostID,
			reaction.UserID,
			reaction.Type,
		).Scan(&reaction.ID, &reaction.CreatedAt)

		if err != nil {
			if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
				return pkg.ErrNotFound
			}
			return fmt.Errorf("failed to upsert reaction: %w", err)
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return created, nil
}

func (r *sqliteReactionRepo) Delete(ctx context.Context, postID, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM reactions WHERE post_id = ? AND user_id = ?`, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete reaction: %w", err)
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

func (r *sqliteReactionRepo) ListByPostID(ctx context.Context, postID string) ([]models.Reaction, error) {
	query := `
		SELECT id, post_id, user_id, type, created_at
		FROM reactions
		WHERE post_id = ?
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reactions: %w", err)
	}
	defer rows.Close()

	reactions := []models.Reaction{}
	for rows.Next() {
		var reaction models.Reaction
		if err := rows.Scan(
			&reaction.ID, &reaction.PostID, &reaction.UserID,
			&reaction.Type, &reaction.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reaction row: %w", err)
		}
		reactions = append(reactions, reaction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reaction rows: %w", err)
	}

	return reactions, nil
}
