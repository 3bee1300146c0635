package controllers

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mnasmart/onlinemart/internal/pkg/paystack"
)

type initializePaymentRequest struct {
	Email       string                 `json:"email" validate:"required,email"`
	Amount      float64                `json:"amount" validate:"required,gt=0"`
	CallbackURL string                 `json:"callback_url" validate:"omitempty,url"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// HandleInitializePayment starts a hosted checkout for the authenticated
// buyer. The amount arrives in major currency units and is converted to kobo
// before the provider call.
func HandleInitializePayment(c *fiber.Ctx) error {
	var req initializePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "A valid email and a positive amount are required")
	}

	client := paystack.NewClientFromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	result, err := client.InitializeTransaction(ctx, paystack.InitializeRequest{
		Email:       strings.TrimSpace(req.Email),
		AmountKobo:  paystack.ToKobo(req.Amount),
		CallbackURL: strings.TrimSpace(req.CallbackURL),
		Metadata:    req.Metadata,
	})
	if err != nil {
		log.Printf("paystack initialize failed: %v", err)
		return serverError(c, "Payment could not be initialized")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":           true,
		"authorization_url": result.AuthorizationURL,
		"access_code":       result.AccessCode,
		"reference":         result.Reference,
	})
}
