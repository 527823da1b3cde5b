package transfer

import (
	"encoding/json"
	"errors"
)

// IDList accepts either a single string or an array of strings, matching
// what callers send for tweet_ids.
type IDList []string

func (l *IDList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = IDList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = IDList(many)
		return nil
	}

	return errors.New("tweet_ids must be a string or an array of strings")
}

type AnalyticsRequest struct {
	TweetIDs    IDList   `json:"tweet_ids"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Granularity string   `json:"granularity"`
	Fields      []string `json:"fields"`
}

type AnalyticsMetadata struct {
	TweetCount  int      `json:"tweet_count"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Granularity string   `json:"granularity"`
	Fields      []string `json:"fields"`
}

type AnalyticsResponse struct {
	Success   bool              `json:"success"`
	Analytics json.RawMessage   `json:"analytics"`
	Metadata  AnalyticsMetadata `json:"metadata"`
}
