package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/marketeer/internal/models"
	"github.com/maheshrc27/marketeer/internal/repository"
	"github.com/maheshrc27/marketeer/internal/service"
	"github.com/maheshrc27/marketeer/internal/twitter"
)

type TokenRefreshJob struct {
	xa    repository.XAccountRepository
	tc    *twitter.Client
	store twitter.TokenStore
}

func NewTokenRefreshJob(xa repository.XAccountRepository, tc *twitter.Client, store twitter.TokenStore) *TokenRefreshJob {
	return &TokenRefreshJob{
		xa:    xa,
		tc:    tc,
		store: store,
	}
}

// RefreshTokens proactively rotates token pairs expiring within the next
// half hour so scheduled publishes don't fire with a dead token.
func (c *TokenRefreshJob) RefreshTokens() {
	ctx := context.Background()

	currentTime := time.Now()
	timeIn30Minutes := currentTime.Add(30 * time.Minute)

	accounts, err := c.xa.ListByExpiryInterval(ctx, currentTime, timeIn30Minutes)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, acc := range accounts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *models.XAccount) {
			defer wg.Done()
			defer func() { <-semaphore }()

			refreshToken, err := c.store.RefreshToken(ctx, acc.UserID)
			if err != nil {
				slog.Info("unable to read refresh token", "user_id", acc.UserID, "error", err)
				return
			}

			pair, expiresIn, err := c.tc.RefreshAccessToken(ctx, refreshToken)
			if err != nil {
				slog.Info("unable to refresh tokens", "user_id", acc.UserID, "error", err)
				return
			}

			if err := c.store.SaveTokens(ctx, acc.UserID, pair, service.GetExpiresAt(expiresIn)); err != nil {
				slog.Info("unable to save refreshed tokens", "user_id", acc.UserID, "error", err)
			}
		}(acc)
	}

	wg.Wait()
}
