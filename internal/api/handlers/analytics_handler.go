package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/marketeer/internal/service"
	"github.com/maheshrc27/marketeer/internal/transfer"
	"github.com/maheshrc27/marketeer/internal/twitter"
)

const analyticsHelpURL = "https://developer.twitter.com/en/docs/twitter-api/tweets/tweet-analytics/introduction"

type AnalyticsHandler struct {
	s service.AnalyticsService
}

func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{s: service}
}

func (h *AnalyticsHandler) FetchAnalytics(c *fiber.Ctx) error {
	userID := GetUserID(c)
	accessToken := GetAccessToken(c)

	if accessToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "no connected X account",
		})
	}

	var req transfer.AnalyticsRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	resp, err := h.s.Fetch(c.Context(), userID, accessToken, &req)
	if err != nil {
		return h.analyticsError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// analyticsError translates the provider's analytics failure modes. The
// enrollment rejection gets a pointer to the docs since the fix is an
// account-level change, not a request change.
func (h *AnalyticsHandler) analyticsError(c *fiber.Ctx, err error) error {
	var apiErr *twitter.APIError
	if !errors.As(err, &apiErr) {
		return serviceError(c, err)
	}

	if apiErr.Reason == "client-not-enrolled" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "app is not enrolled in the analytics API tier",
			"help":    analyticsHelpURL,
			"details": apiErr.Body,
		})
	}

	switch apiErr.StatusCode {
	case fiber.StatusUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "X authorization expired, sign in again",
		})
	case fiber.StatusTooManyRequests:
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"success": false,
			"error":   "X API rate limit reached, try again later",
		})
	}

	return serviceError(c, err)
}

func (h *AnalyticsHandler) Timeline(c *fiber.Ctx) error {
	userID := GetUserID(c)
	accessToken := GetAccessToken(c)

	if accessToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "no connected X account",
		})
	}

	limit := c.QueryInt("limit", 10)

	payload, err := h.s.Timeline(c.Context(), userID, accessToken, limit)
	if err != nil {
		return h.analyticsError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(payload)
}
