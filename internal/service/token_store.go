package service

import (
	"context"
	"errors"
	"time"

	config "github.com/maheshrc27/marketeer/configs"
	"github.com/maheshrc27/marketeer/internal/repository"
	"github.com/maheshrc27/marketeer/internal/twitter"
	"github.com/maheshrc27/marketeer/pkg/utils"
)

// accountTokenStore backs the twitter client's refresh path with the
// x_accounts row, decrypting on read and encrypting on write.
type accountTokenStore struct {
	cfg config.Config
	xa  repository.XAccountRepository
}

func NewAccountTokenStore(cfg config.Config, xa repository.XAccountRepository) twitter.TokenStore {
	return &accountTokenStore{cfg: cfg, xa: xa}
}

func (s *accountTokenStore) RefreshToken(ctx context.Context, userID int64) (string, error) {
	acc, isExist, err := s.xa.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !isExist {
		return "", errors.New("no connected account for user")
	}

	return utils.Decrypt(acc.RefreshToken, []byte(s.cfg.SecretKey))
}

func (s *accountTokenStore) SaveTokens(ctx context.Context, userID int64, pair twitter.TokenPair, expiresAt time.Time) error {
	encryptedAccess, err := utils.Encrypt([]byte(pair.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	encryptedRefresh, err := utils.Encrypt([]byte(pair.RefreshToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	return s.xa.SetTokens(ctx, userID, encryptedAccess, encryptedRefresh, expiresAt)
}
