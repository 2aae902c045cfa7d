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

// sqliteUserRepo, UserRepository interface'inin SQLite implementasyonu.
type sqliteUserRepo struct {
	db *sql.DB
}

// NewSQLiteUserRepo, constructor — interface döner.
func NewSQLiteUserRepo(db *sql.DB) UserRepository {
	return &sqliteUserRepo{db: db}
}

const userColumns = `id, username, email, name, password_hash, avatar_url, bio, email_verified, verify_token, created_at`

func (r *sqliteUserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, name, password_hash, verify_token)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Username,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.VerifyToken,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		// SQLite unique ihlalini typed error olarak expose etmez —
		// mesaj kontrolü ile yakalanır.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return pkg.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *sqliteUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getByField(ctx, "id", id)
}

func (r *sqliteUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getByField(ctx, "email", email)
}

func (r *sqliteUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getByField(ctx, "username", username)
}

// getByField, tek bir kolona göre kullanıcı getirir.
// field parametresi sadece sabit string'lerle çağrılır — SQL injection riski yok.
func (r *sqliteUserRepo) getByField(ctx context.Context, field, value string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = ?`, userColumns, field)

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID, &user.Username, &user.Email, &user.Name, &user.PasswordHash,
		&user.AvatarURL, &user.Bio, &user.EmailVerified, &user.VerifyToken, &user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", field, err)
	}

	return user, nil
}

func (r *sqliteUserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET name = ?, bio = ?, avatar_url = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, user.Name, user.Bio, user.AvatarURL, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
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

func (r *sqliteUserRepo) VerifyEmail(ctx context.Context, token string) error {
	query := `UPDATE users SET email_verified = 1, verify_token = NULL WHERE verify_token = ?`

	result, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
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
