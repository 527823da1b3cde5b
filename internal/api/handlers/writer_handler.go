package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/marketeer/internal/llm"
	"github.com/maheshrc27/marketeer/internal/service"
	"github.com/maheshrc27/marketeer/internal/transfer"
)

type WriterHandler struct {
	s     service.WriterService
	setup service.SetupService
}

func NewWriterHandler(writer service.WriterService, setup service.SetupService) *WriterHandler {
	return &WriterHandler{s: writer, setup: setup}
}

// Generate produces a tweet batch. Callers may omit the product fields
// entirely, in which case the saved setup drives the prompt.
func (h *WriterHandler) Generate(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.GenerateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			slog.Info(err.Error())
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to parse request body",
			})
		}
	}

	if req.ProductName == "" || req.Description == "" {
		setup, err := h.setup.GetSetup(c.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "product setup is required before generating tweets",
				})
			}
			return serviceError(c, err)
		}
		req = transfer.GenerateRequest{
			ProductName:    setup.ProductName,
			Description:    setup.Description,
			TargetAudience: setup.TargetAudience,
			KeyFeatures:    setup.KeyFeatures,
			TonePreference: setup.TonePreference,
			CustomTone:     setup.CustomTone,
			XHandle:        setup.XHandle,
		}
	}

	resp, err := h.s.Generate(c.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "language model rejected the API key",
			})
		case errors.Is(err, llm.ErrRateLimited):
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "language model rate limit reached, try again shortly",
			})
		}
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
