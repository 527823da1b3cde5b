package transfer

import "time"

// TweetInfo is the read projection returned by the tweet listing. Nullable
// columns are flattened so the frontend never sees sql.Null* wrappers.
type TweetInfo struct {
	ID            string     `json:"id"`
	Content       string     `json:"content"`
	Status        string     `json:"status"`
	ProductName   string     `json:"product_name,omitempty"`
	ExternalID    string     `json:"external_id,omitempty"`
	Likes         int        `json:"likes"`
	Replies       int        `json:"replies"`
	Retweets      int        `json:"retweets"`
	ScheduledTime *time.Time `json:"scheduled_time,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type TweetAnalyticsCounters struct {
	Likes    int `json:"likes"`
	Replies  int `json:"replies"`
	Retweets int `json:"retweets"`
}

type TweetUpdate struct {
	TweetID    string                  `json:"tweet_id"`
	Category   string                  `json:"category"`
	ExternalID string                  `json:"external_id"`
	Analytics  *TweetAnalyticsCounters `json:"analytics"`
}

type TweetSchedule struct {
	TweetID       string `json:"tweet_id"`
	ScheduledTime string `json:"scheduled_time"`
}
