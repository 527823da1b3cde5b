package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/maheshrc27/marketeer/internal/repository"
	"github.com/maheshrc27/marketeer/internal/transfer"
	"github.com/maheshrc27/marketeer/internal/twitter"
)

// availableAnalyticsFields is the provider's documented field set.
var availableAnalyticsFields = []string{
	"app_install_attempts",
	"app_opens",
	"detail_expands",
	"email_tweet",
	"engagements",
	"follows",
	"hashtag_clicks",
	"impressions",
	"likes",
	"link_clicks",
	"media_engagements",
	"media_views",
	"permalink_clicks",
	"profile_visits",
	"quote_tweets",
	"replies",
	"retweets",
	"url_clicks",
	"user_profile_clicks",
}

var defaultAnalyticsFields = []string{
	"impressions",
	"likes",
	"replies",
	"retweets",
	"quote_tweets",
	"engagements",
	"media_views",
	"link_clicks",
}

var timestampRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)

var validGranularities = []string{"hourly", "daily", "weekly", "total"}

// maxAnalyticsIDs is the provider batch limit; extra ids are dropped.
const maxAnalyticsIDs = 100

type AnalyticsService interface {
	Fetch(ctx context.Context, userID int64, accessToken string, req *transfer.AnalyticsRequest) (*transfer.AnalyticsResponse, error)
	Timeline(ctx context.Context, userID int64, accessToken string, limit int) (json.RawMessage, error)
}

type analyticsService struct {
	xa repository.XAccountRepository
	tc *twitter.Client
}

func NewAnalyticsService(xa repository.XAccountRepository, tc *twitter.Client) AnalyticsService {
	return &analyticsService{
		xa: xa,
		tc: tc,
	}
}

// Fetch validates the batch request and forwards it to the provider
// analytics endpoint, echoing the effective parameters back alongside
// the raw payload.
func (s *analyticsService) Fetch(ctx context.Context, userID int64, accessToken string, req *transfer.AnalyticsRequest) (*transfer.AnalyticsResponse, error) {
	query, err := buildAnalyticsQuery(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	slog.Info("fetching analytics", "tweet_count", len(query.IDs), "start", query.StartTime, "end", query.EndTime)

	payload, err := s.tc.Analytics(ctx, userID, accessToken, *query)
	if err != nil {
		return nil, err
	}

	return &transfer.AnalyticsResponse{
		Success:   true,
		Analytics: payload,
		Metadata: transfer.AnalyticsMetadata{
			TweetCount:  len(query.IDs),
			StartTime:   query.StartTime,
			EndTime:     query.EndTime,
			Granularity: query.Granularity,
			Fields:      query.Fields,
		},
	}, nil
}

func buildAnalyticsQuery(req *transfer.AnalyticsRequest) (*twitter.AnalyticsQuery, error) {
	ids := make([]string, 0, len(req.TweetIDs))
	for _, id := range req.TweetIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: tweet_ids is required", ErrInvalidInput)
	}
	if len(ids) > maxAnalyticsIDs {
		ids = ids[:maxAnalyticsIDs]
	}

	granularity := req.Granularity
	if granularity == "" {
		granularity = "total"
	}

	fields := req.Fields
	if len(fields) == 0 {
		fields = defaultAnalyticsFields
	}

	err := validation.Errors{
		"start_time":  validation.Validate(req.StartTime, validation.Required, validation.Match(timestampRe)),
		"end_time":    validation.Validate(req.EndTime, validation.Required, validation.Match(timestampRe)),
		"granularity": validation.Validate(granularity, validation.In(anyValues(validGranularities)...)),
		"fields":      validation.Validate(fields, validation.Each(validation.In(anyValues(availableAnalyticsFields)...))),
	}.Filter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &twitter.AnalyticsQuery{
		IDs:         ids,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Granularity: granularity,
		Fields:      fields,
	}, nil
}

func anyValues(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, value := range values {
		out[i] = value
	}
	return out
}

// Timeline returns the user's recent tweets with public metrics.
func (s *analyticsService) Timeline(ctx context.Context, userID int64, accessToken string, limit int) (json.RawMessage, error) {
	if limit < 5 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	acc, isExist, err := s.xa.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, ErrNotFound
	}

	return s.tc.UserTweets(ctx, userID, accessToken, acc.XUserID, limit)
}
