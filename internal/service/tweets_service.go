package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/marketeer/internal/models"
	"github.com/maheshrc27/marketeer/internal/repository"
	"github.com/maheshrc27/marketeer/internal/transfer"
)

type TweetsService interface {
	List(ctx context.Context, userID int64) ([]transfer.TweetInfo, error)
	Update(ctx context.Context, userID int64, update *transfer.TweetUpdate) (*transfer.TweetInfo, error)
	Schedule(ctx context.Context, userID int64, schedule *transfer.TweetSchedule) (time.Duration, error)
}

type tweetsService struct {
	tr repository.TweetRepository
}

func NewTweetsService(tr repository.TweetRepository) TweetsService {
	return &tweetsService{
		tr: tr,
	}
}

// List returns the user's tweets newest-first with engagement counters
// folded into the projection.
func (s *tweetsService) List(ctx context.Context, userID int64) ([]transfer.TweetInfo, error) {
	tweets, err := s.tr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing tweets: %w", err)
	}

	infos := make([]transfer.TweetInfo, 0, len(tweets))
	for _, tweet := range tweets {
		infos = append(infos, toTweetInfo(tweet))
	}
	return infos, nil
}

// Update applies a category change plus optional external id and
// engagement counters. The row must belong to userID; anything else is a
// not-found, never a hint that the row exists.
func (s *tweetsService) Update(ctx context.Context, userID int64, update *transfer.TweetUpdate) (*transfer.TweetInfo, error) {
	if _, err := uuid.Parse(update.TweetID); err != nil {
		slog.Info("invalid tweet id", "tweet_id", update.TweetID)
		return nil, fmt.Errorf("%w: tweet_id must be a UUID", ErrInvalidInput)
	}
	if update.Category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}

	tweet, err := s.tr.GetByID(ctx, update.TweetID)
	if err != nil {
		return nil, err
	}
	if tweet == nil || tweet.UserID != userID {
		return nil, ErrNotFound
	}

	// posted rows must carry an external id; generated rows must not.
	switch update.Category {
	case models.TweetStatusPosted:
		if update.ExternalID == "" && !tweet.ExternalID.Valid {
			return nil, fmt.Errorf("%w: posted tweets require an external id", ErrInvalidInput)
		}
	case models.TweetStatusGenerated:
		if update.ExternalID != "" || tweet.ExternalID.Valid {
			return nil, fmt.Errorf("%w: generated tweets cannot carry an external id", ErrInvalidInput)
		}
	}

	fields := repository.TweetUpdateFields{Status: update.Category}
	if update.ExternalID != "" {
		fields.ExternalID = sql.NullString{String: update.ExternalID, Valid: true}
	}
	if update.Analytics != nil {
		fields.Likes = sql.NullInt64{Int64: int64(update.Analytics.Likes), Valid: true}
		fields.Replies = sql.NullInt64{Int64: int64(update.Analytics.Replies), Valid: true}
		fields.Retweets = sql.NullInt64{Int64: int64(update.Analytics.Retweets), Valid: true}
	}

	affected, err := s.tr.Update(ctx, update.TweetID, userID, &fields)
	if err != nil {
		return nil, fmt.Errorf("error updating tweet: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	updated, err := s.tr.GetByID(ctx, update.TweetID)
	if err != nil || updated == nil {
		return nil, fmt.Errorf("error reloading tweet: %w", err)
	}

	info := toTweetInfo(updated)
	return &info, nil
}

// Schedule marks the row scheduled and returns the enqueue delay. Posted
// rows are final; rescheduling one would fire a duplicate publish.
func (s *tweetsService) Schedule(ctx context.Context, userID int64, schedule *transfer.TweetSchedule) (time.Duration, error) {
	if _, err := uuid.Parse(schedule.TweetID); err != nil {
		return 0, fmt.Errorf("%w: tweet_id must be a UUID", ErrInvalidInput)
	}

	scheduledTime, err := time.Parse(time.RFC3339, schedule.ScheduledTime)
	if err != nil {
		slog.Info(err.Error())
		return 0, fmt.Errorf("%w: scheduled_time must be RFC3339", ErrInvalidInput)
	}

	tweet, err := s.tr.GetByID(ctx, schedule.TweetID)
	if err != nil {
		return 0, err
	}
	if tweet == nil || tweet.UserID != userID {
		return 0, ErrNotFound
	}
	if tweet.Status == models.TweetStatusPosted {
		return 0, fmt.Errorf("%w: posted tweets cannot be scheduled", ErrInvalidInput)
	}

	affected, err := s.tr.SetScheduled(ctx, schedule.TweetID, userID, scheduledTime)
	if err != nil {
		return 0, fmt.Errorf("error scheduling tweet: %w", err)
	}
	if affected == 0 {
		return 0, ErrNotFound
	}

	delay := time.Until(scheduledTime)
	if delay < 0 {
		delay = 0
	}
	return delay, nil
}

func toTweetInfo(tweet *models.Tweet) transfer.TweetInfo {
	info := transfer.TweetInfo{
		ID:          tweet.ID,
		Content:     tweet.Content,
		Status:      tweet.Status,
		ProductName: tweet.ProductName,
		Likes:       tweet.Likes,
		Replies:     tweet.Replies,
		Retweets:    tweet.Retweets,
		CreatedAt:   tweet.CreatedAt,
	}
	if tweet.ExternalID.Valid {
		info.ExternalID = tweet.ExternalID.String
	}
	if tweet.ScheduledTime.Valid {
		t := tweet.ScheduledTime.Time
		info.ScheduledTime = &t
	}
	return info
}
