package queue

import (
	config "github.com/maheshrc27/marketeer/configs"
	"github.com/maheshrc27/marketeer/internal/repository"
	"github.com/maheshrc27/marketeer/internal/service"
)

type Queue struct {
	tr  repository.TweetRepository
	xa  repository.XAccountRepository
	ps  service.PublishService
	cfg config.Config
}

func NewQueue(
	cfg config.Config,
	tr repository.TweetRepository,
	xa repository.XAccountRepository,
	ps service.PublishService) *Queue {
	return &Queue{
		tr:  tr,
		xa:  xa,
		ps:  ps,
		cfg: cfg,
	}
}

const TaskTypeScheduleTweet = "schedule:tweet"

type ScheduleTweetPayload struct {
	TweetID string `json:"tweet_id"`
	UserID  int64  `json:"user_id"`
}
