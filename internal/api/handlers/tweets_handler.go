package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/maheshrc27/marketeer/internal/queue"
	"github.com/maheshrc27/marketeer/internal/service"
	"github.com/maheshrc27/marketeer/internal/transfer"
)

type TweetsHandler struct {
	s           service.TweetsService
	AsynqClient *asynq.Client
}

func NewTweetsHandler(service service.TweetsService, asynqClient *asynq.Client) *TweetsHandler {
	return &TweetsHandler{s: service, AsynqClient: asynqClient}
}

func (h *TweetsHandler) ListTweets(c *fiber.Ctx) error {
	userID := GetUserID(c)

	tweets, err := h.s.List(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tweets)
}

func (h *TweetsHandler) UpdateTweet(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var update transfer.TweetUpdate
	if err := c.BodyParser(&update); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	tweet, err := h.s.Update(c.Context(), userID, &update)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"tweet":   tweet,
	})
}

// ScheduleTweet marks the row scheduled and enqueues the deferred
// publish task with the matching delay.
func (h *TweetsHandler) ScheduleTweet(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var schedule transfer.TweetSchedule
	if err := c.BodyParser(&schedule); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	delay, err := h.s.Schedule(c.Context(), userID, &schedule)
	if err != nil {
		return serviceError(c, err)
	}

	err = queue.EnqueueTweet(h.AsynqClient, queue.ScheduleTweetPayload{
		TweetID: schedule.TweetID,
		UserID:  userID,
	}, delay)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error scheduling tweet",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Tweet scheduled successfully",
	})
}
