package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/marketeer/internal/service"
	"github.com/maheshrc27/marketeer/internal/transfer"
	"github.com/maheshrc27/marketeer/internal/twitter"
)

type PublishHandler struct {
	s service.PublishService
}

func NewPublishHandler(service service.PublishService) *PublishHandler {
	return &PublishHandler{s: service}
}

func (h *PublishHandler) PublishTweet(c *fiber.Ctx) error {
	userID := GetUserID(c)
	accessToken := GetAccessToken(c)

	if accessToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "no connected X account",
		})
	}

	var req transfer.PublishRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	resp, err := h.s.Publish(c.Context(), userID, accessToken, &req)
	if err != nil {
		// Provider rejections surface as forbidden with the provider
		// payload attached so callers see the real reason.
		var apiErr *twitter.APIError
		if errors.As(err, &apiErr) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   apiErr.Error(),
				"details": apiErr.Body,
			})
		}
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
