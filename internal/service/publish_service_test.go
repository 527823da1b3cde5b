package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/maheshrc27/marketeer/internal/models"
	"github.com/maheshrc27/marketeer/internal/transfer"
	"github.com/maheshrc27/marketeer/internal/twitter"
)

func newPublishTestServer(t *testing.T, handler http.HandlerFunc) *twitter.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return twitter.NewClient(twitter.Config{APIBaseURL: srv.URL}, nil)
}

func TestPublishStoredTweetMarksPosted(t *testing.T) {
	tc := newPublishTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req twitter.TweetRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Text != "a generated tweet about the product" {
			t.Errorf("published text = %q", req.Text)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(twitter.TweetResponse{
			Data: twitter.TweetData{ID: "190", Text: req.Text},
		})
	})

	repo := newStubTweetRepo(generatedTweet(testTweetID, 1))
	svc := NewPublishService(repo, tc)

	resp, err := svc.Publish(context.Background(), 1, "token", &transfer.PublishRequest{TweetID: testTweetID})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if !resp.Success || resp.ExternalID != "190" {
		t.Errorf("resp = %+v", resp)
	}

	row := repo.tweets[testTweetID]
	if row.Status != models.TweetStatusPosted {
		t.Errorf("row status = %q, want posted", row.Status)
	}
	if !row.ExternalID.Valid || row.ExternalID.String != "190" {
		t.Errorf("row external id = %+v", row.ExternalID)
	}
}

func TestPublishAdHocText(t *testing.T) {
	tc := newPublishTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(twitter.TweetResponse{
			Data: twitter.TweetData{ID: "191", Text: "hello"},
		})
	})

	svc := NewPublishService(newStubTweetRepo(), tc)

	resp, err := svc.Publish(context.Background(), 1, "token", &transfer.PublishRequest{Text: "hello"})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if resp.ExternalID != "191" {
		t.Errorf("external id = %q", resp.ExternalID)
	}
}

func TestPublishPassesThroughAttachments(t *testing.T) {
	tc := newPublishTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req twitter.TweetRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Media == nil || len(req.Media.MediaIDs) != 2 {
			t.Errorf("media = %+v", req.Media)
		}
		if req.Poll == nil || req.Poll.DurationMinutes != 60 {
			t.Errorf("poll = %+v", req.Poll)
		}
		if req.Reply == nil || req.Reply.InReplyToTweetID != "555" {
			t.Errorf("reply = %+v", req.Reply)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(twitter.TweetResponse{Data: twitter.TweetData{ID: "192"}})
	})

	svc := NewPublishService(newStubTweetRepo(), tc)

	_, err := svc.Publish(context.Background(), 1, "token", &transfer.PublishRequest{
		Text:     "with attachments",
		MediaIDs: []string{"m1", "m2"},
		Poll:     &transfer.PublishPoll{Options: []string{"yes", "no"}, DurationMinutes: 60},
		Reply:    &transfer.PublishReply{InReplyToTweetID: "555"},
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
}

func TestPublishValidation(t *testing.T) {
	svc := NewPublishService(newStubTweetRepo(generatedTweet(testTweetID, 2)), nil)

	tests := []struct {
		name    string
		req     *transfer.PublishRequest
		wantErr error
	}{
		{"no text no id", &transfer.PublishRequest{}, ErrInvalidInput},
		{"bad uuid", &transfer.PublishRequest{TweetID: "nope"}, ErrInvalidInput},
		{"too long", &transfer.PublishRequest{Text: strings.Repeat("x", 281)}, ErrInvalidInput},
		{"other users tweet", &transfer.PublishRequest{TweetID: testTweetID}, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Publish(context.Background(), 1, "token", tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPublishRejectsAlreadyPostedTweet(t *testing.T) {
	tweet := generatedTweet(testTweetID, 1)
	tweet.Status = models.TweetStatusPosted
	tweet.ExternalID = sql.NullString{String: "190", Valid: true}
	svc := NewPublishService(newStubTweetRepo(tweet), nil)

	_, err := svc.Publish(context.Background(), 1, "token", &transfer.PublishRequest{TweetID: testTweetID})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestPublishProviderRejection(t *testing.T) {
	tc := newPublishTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"reason":"duplicate content"}`))
	})

	repo := newStubTweetRepo(generatedTweet(testTweetID, 1))
	svc := NewPublishService(repo, tc)

	_, err := svc.Publish(context.Background(), 1, "token", &transfer.PublishRequest{TweetID: testTweetID})

	var apiErr *twitter.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d", apiErr.StatusCode)
	}

	// failed publish must not flip the row to posted
	if repo.tweets[testTweetID].Status != models.TweetStatusGenerated {
		t.Errorf("row status = %q", repo.tweets[testTweetID].Status)
	}
}
