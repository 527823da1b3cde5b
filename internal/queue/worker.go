package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/marketeer/internal/models"
	"github.com/maheshrc27/marketeer/internal/transfer"
	"github.com/maheshrc27/marketeer/pkg/utils"
)

func (j *Queue) HandleScheduleTweetTask(ctx context.Context, task *asynq.Task) error {
	var payload ScheduleTweetPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	if err := j.PublishScheduled(ctx, payload.TweetID, payload.UserID); err != nil {
		slog.Error("scheduled publish failed", "tweet_id", payload.TweetID, "error", err)
		if err := j.tr.SetStatus(ctx, payload.TweetID, models.TweetStatusFailed); err != nil {
			slog.Error("failed to mark tweet failed", "tweet_id", payload.TweetID, "error", err)
		}
		return err
	}

	return nil
}

// PublishScheduled fires a previously scheduled tweet using the stored
// account tokens. Rows no longer in the scheduled state are skipped, the
// user cancelled or already published them.
func (j *Queue) PublishScheduled(ctx context.Context, tweetID string, userID int64) error {
	tweet, err := j.tr.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet == nil || tweet.UserID != userID {
		return errors.New("tweet not found")
	}
	if tweet.Status != models.TweetStatusScheduled {
		slog.Info("skipping tweet no longer scheduled", "tweet_id", tweetID, "status", tweet.Status)
		return nil
	}

	acc, isExist, err := j.xa.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if !isExist {
		return errors.New("no connected account for scheduled tweet")
	}

	accessToken, err := utils.Decrypt(acc.AccessToken, []byte(j.cfg.SecretKey))
	if err != nil {
		return err
	}

	_, err = j.ps.Publish(ctx, userID, accessToken, &transfer.PublishRequest{TweetID: tweetID})
	return err
}
