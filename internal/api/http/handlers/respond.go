package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/smartcity/internal/api/dto"
)

func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.Envelope{
		StatusCode: status,
		Status:     dto.StatusSuccess,
		Message:    message,
		Data:       data,
	})
}
