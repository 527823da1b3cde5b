package transfer

type PublishPoll struct {
	Options         []string `json:"options"`
	DurationMinutes int      `json:"duration_minutes"`
}

type PublishReply struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

// PublishRequest posts either a stored tweet row (TweetID) or raw text.
// Media, poll and reply fields are forwarded to the provider untouched.
type PublishRequest struct {
	TweetID  string        `json:"tweet_id"`
	Text     string        `json:"text"`
	MediaIDs []string      `json:"media_ids"`
	Poll     *PublishPoll  `json:"poll"`
	Reply    *PublishReply `json:"reply"`
}

type PublishResponse struct {
	Success    bool   `json:"success"`
	ExternalID string `json:"external_id"`
	Text       string `json:"text"`
}
