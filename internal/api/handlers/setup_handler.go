package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/marketeer/internal/service"
	"github.com/maheshrc27/marketeer/internal/transfer"
)

type SetupHandler struct {
	s service.SetupService
}

func NewSetupHandler(service service.SetupService) *SetupHandler {
	return &SetupHandler{s: service}
}

func (h *SetupHandler) GetSetup(c *fiber.Ctx) error {
	userID := GetUserID(c)

	setup, err := h.s.GetSetup(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(setup)
}

func (h *SetupHandler) SaveSetup(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var save transfer.SetupSave
	if err := c.BodyParser(&save); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	setup, err := h.s.SaveSetup(c.Context(), userID, &save)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"setup":   setup,
	})
}
