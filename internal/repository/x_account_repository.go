package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/marketeer/internal/models"
)

type XAccountRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.XAccount, bool, error)
	Upsert(ctx context.Context, acc *models.XAccount) (int64, error)
	ListByExpiryInterval(ctx context.Context, initialTime, finalTime time.Time) ([]*models.XAccount, error)
	SetTokens(ctx context.Context, userID int64, accessToken, refreshToken string, expiresAt time.Time) error
}

type xAccountRepository struct {
	db *sql.DB
}

func NewXAccountRepository(db *sql.DB) XAccountRepository {
	return &xAccountRepository{db: db}
}

func (r *xAccountRepository) GetByUserID(ctx context.Context, userID int64) (*models.XAccount, bool, error) {
	query := `
		SELECT id, user_id, x_user_id, username, name, avatar_url, access_token, refresh_token, token_expires_at, created_at, updated_at
		FROM x_accounts WHERE user_id = $1
	`

	var acc models.XAccount
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&acc.ID,
		&acc.UserID,
		&acc.XUserID,
		&acc.Username,
		&acc.Name,
		&acc.AvatarURL,
		&acc.AccessToken,
		&acc.RefreshToken,
		&acc.TokenExpiresAt,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &acc, true, nil
}

// Upsert keeps one connected account per user, replacing the token pair
// on every sign-in.
func (r *xAccountRepository) Upsert(ctx context.Context, acc *models.XAccount) (int64, error) {
	query := `
		INSERT INTO x_accounts (user_id, x_user_id, username, name, avatar_url, access_token, refresh_token, token_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id)
		DO UPDATE SET
			x_user_id = EXCLUDED.x_user_id,
			username = EXCLUDED.username,
			name = EXCLUDED.name,
			avatar_url = EXCLUDED.avatar_url,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expires_at = EXCLUDED.token_expires_at,
			updated_at = NOW()
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		acc.UserID,
		acc.XUserID,
		acc.Username,
		acc.Name,
		acc.AvatarURL,
		acc.AccessToken,
		acc.RefreshToken,
		acc.TokenExpiresAt,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *xAccountRepository) ListByExpiryInterval(ctx context.Context, initialTime, finalTime time.Time) ([]*models.XAccount, error) {
	query := `
		SELECT id, user_id, x_user_id, username, name, avatar_url, access_token, refresh_token, token_expires_at, created_at, updated_at
		FROM x_accounts WHERE token_expires_at BETWEEN $1 AND $2
	`

	rows, err := r.db.QueryContext(ctx, query, initialTime, finalTime)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.XAccount
	for rows.Next() {
		var acc models.XAccount
		err := rows.Scan(
			&acc.ID,
			&acc.UserID,
			&acc.XUserID,
			&acc.Username,
			&acc.Name,
			&acc.AvatarURL,
			&acc.AccessToken,
			&acc.RefreshToken,
			&acc.TokenExpiresAt,
			&acc.CreatedAt,
			&acc.UpdatedAt,
		)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, &acc)
	}
	return accounts, nil
}

func (r *xAccountRepository) SetTokens(ctx context.Context, userID int64, accessToken, refreshToken string, expiresAt time.Time) error {
	query := `
		UPDATE x_accounts
		SET access_token = $1,
			refresh_token = $2,
			token_expires_at = $3,
			updated_at = $4
		WHERE user_id = $5
	`
	_, err := r.db.ExecContext(ctx, query, accessToken, refreshToken, expiresAt, time.Now(), userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
