package twitter

import (
	"encoding/json"
	"fmt"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type MediaIDs struct {
	MediaIDs []string `json:"media_ids"`
}

type Poll struct {
	Options         []string `json:"options"`
	DurationMinutes int      `json:"duration_minutes"`
}

type Reply struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

// TweetRequest is the POST /2/tweets payload. Optional blocks are
// forwarded exactly as the caller supplied them.
type TweetRequest struct {
	Text  string    `json:"text"`
	Media *MediaIDs `json:"media,omitempty"`
	Poll  *Poll     `json:"poll,omitempty"`
	Reply *Reply    `json:"reply,omitempty"`
}

type TweetData struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type TweetResponse struct {
	Data TweetData `json:"data"`
}

type UserData struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profile_image_url"`
}

type UserResponse struct {
	Data UserData `json:"data"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
}

type AnalyticsQuery struct {
	IDs         []string
	StartTime   string
	EndTime     string
	Granularity string
	Fields      []string
}

// APIError carries the provider status and raw error body so handlers can
// pass both through to the caller.
type APIError struct {
	StatusCode int
	Reason     string
	Body       json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twitter: status %d: %s", e.StatusCode, string(e.Body))
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: json.RawMessage(body)}
	var parsed struct {
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Reason = parsed.Reason
	}
	return apiErr
}
