package middleware

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/marketeer/configs"
	"github.com/maheshrc27/marketeer/internal/repository"
	"github.com/maheshrc27/marketeer/internal/service"
	"github.com/maheshrc27/marketeer/pkg/utils"
)

type AuthMiddleware struct {
	s   service.ApiKeyService
	xa  repository.XAccountRepository
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config, s service.ApiKeyService, xa repository.XAccountRepository) *AuthMiddleware {
	return &AuthMiddleware{s: s, xa: xa, cfg: cfg}
}

// AuthMiddleware accepts either the session cookie or an api_key query
// parameter. It sets "user_id" and, when the provider token pair can be
// recovered, a decrypted "access_token" local.
func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(m.cfg.CookieName)
		apiKey := c.Query("api_key")

		if tokenString == "" && apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing Keys or cookies",
			})
		}

		if apiKey != "" {
			userID, err := m.s.GetUserID(c.Context(), apiKey)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			c.Locals("user_id", fmt.Sprintf("%d", userID))

			// API key callers carry no session token pair, the stored
			// account is the only source.
			if acc, isExist, err := m.xa.GetByUserID(c.Context(), userID); err == nil && isExist {
				if accessToken, err := utils.Decrypt(acc.AccessToken, []byte(m.cfg.SecretKey)); err == nil {
					c.Locals("access_token", accessToken)
				}
			}
		} else if tokenString != "" {
			claims, err := utils.ValidateToken(m.cfg.SecretKey, tokenString)
			if err != nil {
				c.Cookie(&fiber.Cookie{
					Name:   m.cfg.CookieName,
					Value:  "",
					Path:   "/",
					MaxAge: -1, // Delete cookie
				})

				slog.Info("token validation failed", "error", err)
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid or expired token",
				})
			}

			c.Locals("user_id", claims.UserID)

			if claims.AccessToken != "" {
				accessToken, err := utils.Decrypt(claims.AccessToken, []byte(m.cfg.SecretKey))
				if err != nil {
					slog.Info(err.Error())
					return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
						"error": "Invalid session",
					})
				}
				c.Locals("access_token", accessToken)
			}
		}
		return c.Next()
	}
}
