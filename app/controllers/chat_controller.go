package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mnasmart/onlinemart/internal/pkg/chat"
)

type chatRequest struct {
	Messages []chat.Message `json:"messages"`
}

// HandleChat proxies the storefront assistant conversation to the AI gateway.
// Gateway throttling surfaces as 429, exhausted quota as 503, anything else
// upstream as a generic 500.
func HandleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := chat.ValidateMessages(req.Messages); err != nil {
		return badRequest(c, err.Error())
	}

	client := chat.NewClientFromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reply, err := client.Complete(ctx, req.Messages)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrRateLimited):
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "rate_limited",
				"message": "The assistant is busy. Please try again shortly.",
			})
		case errors.Is(err, chat.ErrQuota):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":   "service_unavailable",
				"message": "The assistant is temporarily unavailable.",
			})
		default:
			log.Printf("chat completion failed: %v", err)
			return serverError(c, "The assistant could not answer")
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"reply": reply})
}
