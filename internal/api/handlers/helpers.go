package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/marketeer/internal/service"
	"github.com/maheshrc27/marketeer/internal/twitter"
)

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

// GetAccessToken returns the decrypted provider token, empty when the
// middleware could not recover one.
func GetAccessToken(c *fiber.Ctx) string {
	token, _ := c.Locals("access_token").(string)
	return token
}

// serviceError maps the service sentinels and provider failures onto
// HTTP statuses. Ownership failures stay indistinguishable from missing
// rows.
func serviceError(c *fiber.Ctx, err error) error {
	var apiErr *twitter.APIError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "not found",
		})
	case errors.Is(err, service.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.As(err, &apiErr):
		status := apiErr.StatusCode
		if status == 0 {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(fiber.Map{
			"error":   apiErr.Error(),
			"details": apiErr.Body,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
