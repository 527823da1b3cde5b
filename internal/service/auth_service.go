package service

import (
	"context"
	"errors"
	"log/slog"

	config "github.com/maheshrc27/marketeer/configs"
	"github.com/maheshrc27/marketeer/internal/models"
	"github.com/maheshrc27/marketeer/internal/repository"
	"github.com/maheshrc27/marketeer/internal/twitter"
	"github.com/maheshrc27/marketeer/pkg/utils"
	"golang.org/x/oauth2"
)

// LoginResult is what the callback handler needs to mint a session:
// token values are already AES-GCM encrypted.
type LoginResult struct {
	UserID       int64
	Username     string
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	AuthCodeURL(state string) string
	LoginCallback(ctx context.Context, code string) (*LoginResult, error)
}

type authService struct {
	cfg config.Config
	u   repository.UserRepository
	xa  repository.XAccountRepository
	tc  *twitter.Client
}

func NewAuthService(cfg config.Config, u repository.UserRepository, xa repository.XAccountRepository, tc *twitter.Client) AuthService {
	return &authService{
		cfg: cfg,
		u:   u,
		xa:  xa,
		tc:  tc,
	}
}

func (s *authService) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.XClientID,
		ClientSecret: s.cfg.XClientSecret,
		RedirectURL:  s.cfg.XRedirectURI,
		Scopes:       []string{"tweet.read", "users.read", "tweet.write", "offline.access"},
		Endpoint: oauth2.Endpoint{
			AuthURL:   "https://twitter.com/i/oauth2/authorize",
			TokenURL:  twitter.DefaultTokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

func (s *authService) AuthCodeURL(state string) string {
	return s.oauthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// LoginCallback exchanges the authorization code, resolves the X user and
// upserts both the user row and the connected-account token pair.
func (s *authService) LoginCallback(ctx context.Context, code string) (*LoginResult, error) {
	if code == "" {
		err := errors.New("authorization code is empty")
		slog.Info(err.Error())
		return nil, err
	}

	oauthCfg := s.oauthConfig()
	if oauthCfg.ClientID == "" || oauthCfg.ClientSecret == "" || oauthCfg.RedirectURL == "" {
		err := errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return nil, err
	}

	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	userInfo, err := s.tc.Me(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	avatarURL := userInfo.ProfileImageURL
	if avatarURL == "" {
		avatarURL = models.DefaultAvatarURL
	}

	userID, err := s.u.Upsert(ctx, userInfo.Username, avatarURL)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	refreshToken := token.RefreshToken

	encryptedAccess, err := utils.Encrypt([]byte(token.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, err
	}

	encryptedRefresh, err := utils.Encrypt([]byte(refreshToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, err
	}

	_, err = s.xa.Upsert(ctx, &models.XAccount{
		UserID:         userID,
		XUserID:        userInfo.ID,
		Username:       userInfo.Username,
		Name:           userInfo.Name,
		AvatarURL:      avatarURL,
		AccessToken:    encryptedAccess,
		RefreshToken:   encryptedRefresh,
		TokenExpiresAt: token.Expiry,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		UserID:       userID,
		Username:     userInfo.Username,
		AccessToken:  encryptedAccess,
		RefreshToken: encryptedRefresh,
	}, nil
}
