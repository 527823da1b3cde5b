package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lib/pq"
	"github.com/maheshrc27/marketeer/internal/models"
)

type SetupRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Setup, bool, error)
	Upsert(ctx context.Context, setup *models.Setup) (int64, error)
}

type setupRepository struct {
	db *sql.DB
}

func NewSetupRepository(db *sql.DB) SetupRepository {
	return &setupRepository{db: db}
}

func (r *setupRepository) GetByUserID(ctx context.Context, userID int64) (*models.Setup, bool, error) {
	query := `
		SELECT id, user_id, product_name, description, target_audience, key_features, tone_preference, custom_tone, x_handle, created_at, updated_at
		FROM setups WHERE user_id = $1
	`

	var setup models.Setup
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&setup.ID,
		&setup.UserID,
		&setup.ProductName,
		&setup.Description,
		&setup.TargetAudience,
		pq.Array(&setup.KeyFeatures),
		&setup.TonePreference,
		&setup.CustomTone,
		&setup.XHandle,
		&setup.CreatedAt,
		&setup.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &setup, true, nil
}

func (r *setupRepository) Upsert(ctx context.Context, setup *models.Setup) (int64, error) {
	query := `
		INSERT INTO setups (user_id, product_name, description, target_audience, key_features, tone_preference, custom_tone, x_handle)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id)
		DO UPDATE SET
			product_name = EXCLUDED.product_name,
			description = EXCLUDED.description,
			target_audience = EXCLUDED.target_audience,
			key_features = EXCLUDED.key_features,
			tone_preference = EXCLUDED.tone_preference,
			custom_tone = EXCLUDED.custom_tone,
			x_handle = EXCLUDED.x_handle,
			updated_at = NOW()
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		setup.UserID,
		setup.ProductName,
		setup.Description,
		setup.TargetAudience,
		pq.Array(setup.KeyFeatures),
		setup.TonePreference,
		setup.CustomTone,
		setup.XHandle,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}
