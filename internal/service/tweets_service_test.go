package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/maheshrc27/marketeer/internal/models"
	"github.com/maheshrc27/marketeer/internal/repository"
	"github.com/maheshrc27/marketeer/internal/transfer"
)

const (
	testTweetID  = "5c6cf4a4-9207-4f0f-8e35-0d67a7e0e3b6"
	otherTweetID = "9a2b1f70-12cd-4e89-9a14-3f5a0c1de222"
)

// stubTweetRepo holds rows in memory and records mutations.
type stubTweetRepo struct {
	tweets map[string]*models.Tweet

	updated   *repository.TweetUpdateFields
	scheduled *time.Time
}

func newStubTweetRepo(tweets ...*models.Tweet) *stubTweetRepo {
	repo := &stubTweetRepo{tweets: make(map[string]*models.Tweet)}
	for _, tweet := range tweets {
		repo.tweets[tweet.ID] = tweet
	}
	return repo
}

func (s *stubTweetRepo) GetByID(ctx context.Context, id string) (*models.Tweet, error) {
	return s.tweets[id], nil
}

func (s *stubTweetRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.Tweet, error) {
	var out []*models.Tweet
	for _, tweet := range s.tweets {
		if tweet.UserID == userID {
			out = append(out, tweet)
		}
	}
	return out, nil
}

func (s *stubTweetRepo) Create(ctx context.Context, tx *sql.Tx, tweet *models.Tweet) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubTweetRepo) Update(ctx context.Context, id string, userID int64, fields *repository.TweetUpdateFields) (int64, error) {
	tweet, ok := s.tweets[id]
	if !ok || tweet.UserID != userID {
		return 0, nil
	}
	s.updated = fields
	tweet.Status = fields.Status
	if fields.ExternalID.Valid {
		tweet.ExternalID = fields.ExternalID
	}
	if fields.Likes.Valid {
		tweet.Likes = int(fields.Likes.Int64)
	}
	if fields.Replies.Valid {
		tweet.Replies = int(fields.Replies.Int64)
	}
	if fields.Retweets.Valid {
		tweet.Retweets = int(fields.Retweets.Int64)
	}
	return 1, nil
}

func (s *stubTweetRepo) SetPosted(ctx context.Context, id string, userID int64, externalID string) (int64, error) {
	tweet, ok := s.tweets[id]
	if !ok || tweet.UserID != userID {
		return 0, nil
	}
	tweet.Status = models.TweetStatusPosted
	tweet.ExternalID = sql.NullString{String: externalID, Valid: true}
	return 1, nil
}

func (s *stubTweetRepo) SetScheduled(ctx context.Context, id string, userID int64, scheduledTime time.Time) (int64, error) {
	tweet, ok := s.tweets[id]
	if !ok || tweet.UserID != userID || tweet.Status == models.TweetStatusPosted {
		return 0, nil
	}
	tweet.Status = models.TweetStatusScheduled
	s.scheduled = &scheduledTime
	return 1, nil
}

func (s *stubTweetRepo) SetStatus(ctx context.Context, id, status string) error {
	if tweet, ok := s.tweets[id]; ok {
		tweet.Status = status
	}
	return nil
}

func (s *stubTweetRepo) Remove(ctx context.Context, id string, userID int64) error {
	delete(s.tweets, id)
	return nil
}

func generatedTweet(id string, userID int64) *models.Tweet {
	return &models.Tweet{
		ID:      id,
		UserID:  userID,
		Content: "a generated tweet about the product",
		Status:  models.TweetStatusGenerated,
	}
}

func TestUpdateRejectsBadInput(t *testing.T) {
	svc := NewTweetsService(newStubTweetRepo(generatedTweet(testTweetID, 1)))

	tests := []struct {
		name   string
		update *transfer.TweetUpdate
	}{
		{"not a uuid", &transfer.TweetUpdate{TweetID: "123", Category: "posted"}},
		{"missing category", &transfer.TweetUpdate{TweetID: testTweetID}},
		{"posted without external id", &transfer.TweetUpdate{TweetID: testTweetID, Category: models.TweetStatusPosted}},
		{"generated with external id", &transfer.TweetUpdate{TweetID: testTweetID, Category: models.TweetStatusGenerated, ExternalID: "190"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), 1, tt.update)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestUpdateHidesOtherUsersTweets(t *testing.T) {
	svc := NewTweetsService(newStubTweetRepo(generatedTweet(testTweetID, 2)))

	_, err := svc.Update(context.Background(), 1, &transfer.TweetUpdate{
		TweetID:  testTweetID,
		Category: models.TweetStatusPosted,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateMissingTweet(t *testing.T) {
	svc := NewTweetsService(newStubTweetRepo())

	_, err := svc.Update(context.Background(), 1, &transfer.TweetUpdate{
		TweetID:  testTweetID,
		Category: models.TweetStatusPosted,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateMarksPostedWithAnalytics(t *testing.T) {
	repo := newStubTweetRepo(generatedTweet(testTweetID, 1))
	svc := NewTweetsService(repo)

	info, err := svc.Update(context.Background(), 1, &transfer.TweetUpdate{
		TweetID:    testTweetID,
		Category:   models.TweetStatusPosted,
		ExternalID: "190",
		Analytics:  &transfer.TweetAnalyticsCounters{Likes: 12, Replies: 3, Retweets: 4},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if info.Status != models.TweetStatusPosted {
		t.Errorf("status = %q", info.Status)
	}
	if info.ExternalID != "190" {
		t.Errorf("external id = %q", info.ExternalID)
	}
	if info.Likes != 12 || info.Replies != 3 || info.Retweets != 4 {
		t.Errorf("counters = %d/%d/%d", info.Likes, info.Replies, info.Retweets)
	}
	if repo.updated == nil || !repo.updated.ExternalID.Valid {
		t.Errorf("repo fields = %+v", repo.updated)
	}
}

func TestUpdatePostedKeepsExistingExternalID(t *testing.T) {
	tweet := generatedTweet(testTweetID, 1)
	tweet.Status = models.TweetStatusPosted
	tweet.ExternalID = sql.NullString{String: "190", Valid: true}
	svc := NewTweetsService(newStubTweetRepo(tweet))

	// no external id supplied, the stored one satisfies the rule
	info, err := svc.Update(context.Background(), 1, &transfer.TweetUpdate{
		TweetID:   testTweetID,
		Category:  models.TweetStatusPosted,
		Analytics: &transfer.TweetAnalyticsCounters{Likes: 99},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if info.ExternalID != "190" {
		t.Errorf("external id = %q", info.ExternalID)
	}
}

func TestScheduleReturnsDelay(t *testing.T) {
	repo := newStubTweetRepo(generatedTweet(testTweetID, 1))
	svc := NewTweetsService(repo)

	future := time.Now().Add(2 * time.Hour)
	delay, err := svc.Schedule(context.Background(), 1, &transfer.TweetSchedule{
		TweetID:       testTweetID,
		ScheduledTime: future.Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if delay <= time.Hour || delay > 2*time.Hour {
		t.Errorf("delay = %v", delay)
	}
	if repo.scheduled == nil {
		t.Fatal("repo never saw the scheduled time")
	}
}

func TestSchedulePastTimeFiresImmediately(t *testing.T) {
	svc := NewTweetsService(newStubTweetRepo(generatedTweet(testTweetID, 1)))

	delay, err := svc.Schedule(context.Background(), 1, &transfer.TweetSchedule{
		TweetID:       testTweetID,
		ScheduledTime: time.Now().Add(-time.Hour).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if delay != 0 {
		t.Errorf("delay = %v, want 0", delay)
	}
}

func TestScheduleRejectsPostedTweet(t *testing.T) {
	tweet := generatedTweet(testTweetID, 1)
	tweet.Status = models.TweetStatusPosted
	tweet.ExternalID = sql.NullString{String: "190", Valid: true}
	repo := newStubTweetRepo(tweet)
	svc := NewTweetsService(repo)

	_, err := svc.Schedule(context.Background(), 1, &transfer.TweetSchedule{
		TweetID:       testTweetID,
		ScheduledTime: time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
	if repo.scheduled != nil {
		t.Error("posted tweet reached SetScheduled")
	}
	if repo.tweets[testTweetID].Status != models.TweetStatusPosted {
		t.Errorf("status = %q, want posted untouched", repo.tweets[testTweetID].Status)
	}
}

func TestScheduleValidation(t *testing.T) {
	svc := NewTweetsService(newStubTweetRepo(generatedTweet(testTweetID, 1)))

	tests := []struct {
		name     string
		schedule *transfer.TweetSchedule
		wantErr  error
	}{
		{"bad uuid", &transfer.TweetSchedule{TweetID: "nope", ScheduledTime: time.Now().Format(time.RFC3339)}, ErrInvalidInput},
		{"bad time", &transfer.TweetSchedule{TweetID: testTweetID, ScheduledTime: "tomorrow"}, ErrInvalidInput},
		{"unknown tweet", &transfer.TweetSchedule{TweetID: otherTweetID, ScheduledTime: time.Now().Format(time.RFC3339)}, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Schedule(context.Background(), 1, tt.schedule)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
