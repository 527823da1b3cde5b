package models

import "time"

// Setup holds the product metadata used to parametrize tweet generation.
// One row per user, upserted on save.
type Setup struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	ProductName    string    `db:"product_name" json:"product_name"`
	Description    string    `db:"description" json:"description"`
	TargetAudience string    `db:"target_audience" json:"target_audience"`
	KeyFeatures    []string  `db:"key_features" json:"key_features"`
	TonePreference string    `db:"tone_preference" json:"tone_preference"`
	CustomTone     string    `db:"custom_tone" json:"custom_tone"`
	XHandle        string    `db:"x_handle" json:"x_handle"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
