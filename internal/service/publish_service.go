package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/maheshrc27/marketeer/internal/models"
	"github.com/maheshrc27/marketeer/internal/repository"
	"github.com/maheshrc27/marketeer/internal/transfer"
	"github.com/maheshrc27/marketeer/internal/twitter"
)

type PublishService interface {
	Publish(ctx context.Context, userID int64, accessToken string, req *transfer.PublishRequest) (*transfer.PublishResponse, error)
}

type publishService struct {
	tr repository.TweetRepository
	tc *twitter.Client
}

func NewPublishService(tr repository.TweetRepository, tc *twitter.Client) PublishService {
	return &publishService{
		tr: tr,
		tc: tc,
	}
}

// Publish forwards the text to POST /2/tweets. When a stored row is
// referenced, its content is published and the row transitions to posted
// with the provider id attached.
func (s *publishService) Publish(ctx context.Context, userID int64, accessToken string, req *transfer.PublishRequest) (*transfer.PublishResponse, error) {
	text := req.Text
	if req.TweetID != "" {
		if _, err := uuid.Parse(req.TweetID); err != nil {
			return nil, fmt.Errorf("%w: tweet_id must be a UUID", ErrInvalidInput)
		}

		tweet, err := s.tr.GetByID(ctx, req.TweetID)
		if err != nil {
			return nil, err
		}
		if tweet == nil || tweet.UserID != userID {
			return nil, ErrNotFound
		}
		if tweet.Status == models.TweetStatusPosted {
			return nil, fmt.Errorf("%w: tweet is already posted", ErrInvalidInput)
		}
		text = tweet.Content
	}

	if text == "" {
		return nil, fmt.Errorf("%w: tweet text is required", ErrInvalidInput)
	}
	if len([]rune(text)) > models.MaxTweetLength {
		return nil, fmt.Errorf("%w: tweet text exceeds %d characters", ErrInvalidInput, models.MaxTweetLength)
	}

	tweetReq := &twitter.TweetRequest{Text: text}
	if len(req.MediaIDs) > 0 {
		tweetReq.Media = &twitter.MediaIDs{MediaIDs: req.MediaIDs}
	}
	if req.Poll != nil {
		tweetReq.Poll = &twitter.Poll{Options: req.Poll.Options, DurationMinutes: req.Poll.DurationMinutes}
	}
	if req.Reply != nil {
		tweetReq.Reply = &twitter.Reply{InReplyToTweetID: req.Reply.InReplyToTweetID}
	}

	resp, err := s.tc.PostTweet(ctx, userID, accessToken, tweetReq)
	if err != nil {
		return nil, err
	}

	if req.TweetID != "" {
		if _, err := s.tr.SetPosted(ctx, req.TweetID, userID, resp.Data.ID); err != nil {
			// The tweet is live; the row update failing must not undo that.
			slog.Error("failed to mark tweet posted", "tweet_id", req.TweetID, "error", err)
		}
	}

	return &transfer.PublishResponse{
		Success:    true,
		ExternalID: resp.Data.ID,
		Text:       resp.Data.Text,
	}, nil
}
