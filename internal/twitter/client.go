// Package twitter wraps the X v2 REST endpoints the service depends on:
// posting, timelines, analytics and the OAuth2 token refresh.
package twitter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultAPIBaseURL = "https://api.twitter.com/2"
	DefaultTokenURL   = "https://api.twitter.com/2/oauth2/token"
)

var ErrRefreshFailed = errors.New("twitter: token refresh failed")

// TokenStore is the authoritative token source consulted when a bearer
// expires mid-request. X rotates refresh tokens, so the stored row wins
// over whatever the session cookie still carries.
type TokenStore interface {
	RefreshToken(ctx context.Context, userID int64) (string, error)
	SaveTokens(ctx context.Context, userID int64, pair TokenPair, expiresAt time.Time) error
}

type Config struct {
	ClientID     string
	ClientSecret string
	APIBaseURL   string
	TokenURL     string
}

type Client struct {
	rc    *resty.Client
	cfg   Config
	store TokenStore
	sf    singleflight.Group
}

func NewClient(cfg Config, store TokenStore) *Client {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIBaseURL, "/")).
		SetTimeout(30 * time.Second)

	return &Client{rc: rc, cfg: cfg, store: store}
}

// Me fetches the authenticated user. Used right after the code exchange,
// so no refresh path.
func (c *Client) Me(ctx context.Context, accessToken string) (*UserData, error) {
	var out UserResponse
	resp, err := c.rc.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("user.fields", "profile_image_url").
		SetResult(&out).
		Get("/users/me")
	if err != nil {
		return nil, fmt.Errorf("twitter: get user: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError(resp.StatusCode(), resp.Body())
	}
	return &out.Data, nil
}

// PostTweet publishes on behalf of the user and returns the provider
// tweet id. One refresh-and-retry on 401.
func (c *Client) PostTweet(ctx context.Context, userID int64, accessToken string, tweet *TweetRequest) (*TweetResponse, error) {
	body, err := c.do(ctx, userID, accessToken, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(tweet).Post("/tweets")
	})
	if err != nil {
		return nil, err
	}

	var out TweetResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("twitter: decode tweet response: %w", err)
	}
	return &out, nil
}

// UserTweets returns the user's recent tweets with public metrics.
func (c *Client) UserTweets(ctx context.Context, userID int64, accessToken, xUserID string, limit int) (json.RawMessage, error) {
	return c.do(ctx, userID, accessToken, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetQueryParams(map[string]string{
				"max_results":  strconv.Itoa(limit),
				"tweet.fields": "public_metrics,created_at",
				"expansions":   "author_id",
			}).
			Get("/users/" + xUserID + "/tweets")
	})
}

// Analytics queries post-level analytics over the supplied window.
func (c *Client) Analytics(ctx context.Context, userID int64, accessToken string, q AnalyticsQuery) (json.RawMessage, error) {
	return c.do(ctx, userID, accessToken, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetQueryParams(map[string]string{
				"ids":              strings.Join(q.IDs, ","),
				"start_time":       q.StartTime,
				"end_time":         q.EndTime,
				"granularity":      q.Granularity,
				"analytics.fields": strings.Join(q.Fields, ","),
			}).
			Get("/tweets/analytics")
	})
}

// do runs one bearer-authorized call. On 401 it refreshes the token pair
// (singleflight per user, so concurrent requests share one refresh),
// persists the rotated pair and retries exactly once.
func (c *Client) do(ctx context.Context, userID int64, accessToken string, call func(*resty.Request) (*resty.Response, error)) (json.RawMessage, error) {
	resp, err := call(c.request(ctx, accessToken))
	if err != nil {
		return nil, fmt.Errorf("twitter: request failed: %w", err)
	}
	if !resp.IsError() {
		return json.RawMessage(resp.Body()), nil
	}
	if resp.StatusCode() != http.StatusUnauthorized || c.store == nil {
		return nil, newAPIError(resp.StatusCode(), resp.Body())
	}

	pair, err := c.refreshForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp, err = call(c.request(ctx, pair.AccessToken))
	if err != nil {
		return nil, fmt.Errorf("twitter: retry failed: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError(resp.StatusCode(), resp.Body())
	}
	return json.RawMessage(resp.Body()), nil
}

func (c *Client) request(ctx context.Context, accessToken string) *resty.Request {
	return c.rc.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetHeader("Content-Type", "application/json")
}

func (c *Client) refreshForUser(ctx context.Context, userID int64) (TokenPair, error) {
	v, err, _ := c.sf.Do(strconv.FormatInt(userID, 10), func() (interface{}, error) {
		refreshToken, err := c.store.RefreshToken(ctx, userID)
		if err != nil {
			return TokenPair{}, err
		}

		pair, expiresIn, err := c.RefreshAccessToken(ctx, refreshToken)
		if err != nil {
			return TokenPair{}, err
		}

		expiresAt := time.Now().Add(time.Duration(expiresIn) * time.Second)
		if err := c.store.SaveTokens(ctx, userID, pair, expiresAt); err != nil {
			slog.Error("failed to persist refreshed tokens", "user_id", userID, "error", err)
			return TokenPair{}, err
		}
		return pair, nil
	})
	if err != nil {
		slog.Info(err.Error())
		return TokenPair{}, fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	return v.(TokenPair), nil
}

// RefreshAccessToken exchanges a refresh token for a new pair. Also used
// directly by the token refresh cron job.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (TokenPair, int, error) {
	basic := base64.StdEncoding.EncodeToString([]byte(c.cfg.ClientID + ":" + c.cfg.ClientSecret))

	var out tokenResponse
	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetHeader("Authorization", "Basic "+basic).
		SetFormData(map[string]string{
			"grant_type":    "refresh_token",
			"refresh_token": refreshToken,
		}).
		SetResult(&out).
		Post(c.cfg.TokenURL)
	if err != nil {
		return TokenPair{}, 0, fmt.Errorf("twitter: refresh request: %w", err)
	}
	if resp.IsError() {
		return TokenPair{}, 0, newAPIError(resp.StatusCode(), resp.Body())
	}
	if out.AccessToken == "" {
		return TokenPair{}, 0, errors.New("twitter: refresh returned no access token")
	}

	pair := TokenPair{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}
	if pair.RefreshToken == "" {
		pair.RefreshToken = refreshToken
	}
	return pair, out.ExpiresIn, nil
}
