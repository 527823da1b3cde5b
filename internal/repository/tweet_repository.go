package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/marketeer/internal/models"
)

// TweetUpdateFields carries the optional PATCH columns. Invalid (unset)
// members leave the stored value untouched via COALESCE.
type TweetUpdateFields struct {
	Status     string
	ExternalID sql.NullString
	Likes      sql.NullInt64
	Replies    sql.NullInt64
	Retweets   sql.NullInt64
}

type TweetRepository interface {
	GetByID(ctx context.Context, id string) (*models.Tweet, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.Tweet, error)
	Create(ctx context.Context, tx *sql.Tx, tweet *models.Tweet) (string, error)
	Update(ctx context.Context, id string, userID int64, fields *TweetUpdateFields) (int64, error)
	SetPosted(ctx context.Context, id string, userID int64, externalID string) (int64, error)
	SetScheduled(ctx context.Context, id string, userID int64, scheduledTime time.Time) (int64, error)
	SetStatus(ctx context.Context, id, status string) error
	Remove(ctx context.Context, id string, userID int64) error
}

type tweetRepository struct {
	db *sql.DB
}

func NewTweetRepository(db *sql.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tx *sql.Tx, tweet *models.Tweet) (string, error) {
	query := `
		INSERT INTO tweets (user_id, content, status, product_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id string
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, tweet.UserID, tweet.Content, tweet.Status, tweet.ProductName).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, tweet.UserID, tweet.Content, tweet.Status, tweet.ProductName).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	return id, nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id string) (*models.Tweet, error) {
	query := `
		SELECT id, user_id, content, status, product_name, external_id, likes, replies, retweets, scheduled_time, created_at, updated_at
		FROM tweets WHERE id = $1
	`

	var tweet models.Tweet
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tweet.ID,
		&tweet.UserID,
		&tweet.Content,
		&tweet.Status,
		&tweet.ProductName,
		&tweet.ExternalID,
		&tweet.Likes,
		&tweet.Replies,
		&tweet.Retweets,
		&tweet.ScheduledTime,
		&tweet.CreatedAt,
		&tweet.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &tweet, nil
}

func (r *tweetRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Tweet, error) {
	query := `
		SELECT id, user_id, content, status, product_name, external_id, likes, replies, retweets, scheduled_time, created_at, updated_at
		FROM tweets WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var tweets []*models.Tweet
	for rows.Next() {
		var tweet models.Tweet
		err := rows.Scan(
			&tweet.ID,
			&tweet.UserID,
			&tweet.Content,
			&tweet.Status,
			&tweet.ProductName,
			&tweet.ExternalID,
			&tweet.Likes,
			&tweet.Replies,
			&tweet.Retweets,
			&tweet.ScheduledTime,
			&tweet.CreatedAt,
			&tweet.UpdatedAt,
		)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		tweets = append(tweets, &tweet)
	}
	return tweets, nil
}

// Update is scoped to rows owned by userID; callers use the returned row
// count to distinguish not-found from success.
func (r *tweetRepository) Update(ctx context.Context, id string, userID int64, fields *TweetUpdateFields) (int64, error) {
	query := `
		UPDATE tweets
		SET status = $1,
			external_id = COALESCE($2, external_id),
			likes = COALESCE($3, likes),
			replies = COALESCE($4, replies),
			retweets = COALESCE($5, retweets),
			updated_at = $6
		WHERE id = $7 AND user_id = $8
	`

	result, err := r.db.ExecContext(ctx, query,
		fields.Status,
		fields.ExternalID,
		fields.Likes,
		fields.Replies,
		fields.Retweets,
		time.Now(),
		id,
		userID,
	)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return result.RowsAffected()
}

func (r *tweetRepository) SetPosted(ctx context.Context, id string, userID int64, externalID string) (int64, error) {
	query := `
		UPDATE tweets
		SET status = $1,
			external_id = $2,
			updated_at = $3
		WHERE id = $4 AND user_id = $5
	`
	result, err := r.db.ExecContext(ctx, query, models.TweetStatusPosted, externalID, time.Now(), id, userID)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return result.RowsAffected()
}

// SetScheduled skips posted rows; their external id must never be
// overwritten by a re-publish.
func (r *tweetRepository) SetScheduled(ctx context.Context, id string, userID int64, scheduledTime time.Time) (int64, error) {
	query := `
		UPDATE tweets
		SET status = $1,
			scheduled_time = $2,
			updated_at = $3
		WHERE id = $4 AND user_id = $5 AND status <> $6
	`
	result, err := r.db.ExecContext(ctx, query, models.TweetStatusScheduled, scheduledTime, time.Now(), id, userID, models.TweetStatusPosted)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return result.RowsAffected()
}

func (r *tweetRepository) SetStatus(ctx context.Context, id, status string) error {
	query := `UPDATE tweets SET status = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *tweetRepository) Remove(ctx context.Context, id string, userID int64) error {
	query := `DELETE FROM tweets WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
