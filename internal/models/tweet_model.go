package models

import (
	"database/sql"
	"time"
)

// Tweet is a generated or user-authored content item. ExternalID is the
// provider-assigned id once the tweet is live; it stays NULL for rows
// that are only generated or scheduled.
type Tweet struct {
	ID            string         `db:"id" json:"id"`
	UserID        int64          `db:"user_id" json:"user_id"`
	Content       string         `db:"content" json:"content"`
	Status        string         `db:"status" json:"status"`
	ProductName   string         `db:"product_name" json:"product_name"`
	ExternalID    sql.NullString `db:"external_id" json:"-"`
	Likes         int            `db:"likes" json:"likes"`
	Replies       int            `db:"replies" json:"replies"`
	Retweets      int            `db:"retweets" json:"retweets"`
	ScheduledTime sql.NullTime   `db:"scheduled_time" json:"-"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

const (
	TweetStatusGenerated = "generated"
	TweetStatusScheduled = "scheduled"
	TweetStatusPosted    = "posted"
	TweetStatusFailed    = "failed"
)

// MaxTweetLength is the X post length limit.
const MaxTweetLength = 280
