package controllers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mnasmart/onlinemart/internal/pkg/database"
	"github.com/mnasmart/onlinemart/internal/pkg/env"
	"github.com/mnasmart/onlinemart/internal/pkg/mail"
	"github.com/mnasmart/onlinemart/internal/pkg/paystack"
	"github.com/mnasmart/onlinemart/internal/pkg/payments"
)

const webhookProvider = "paystack"

// HandlePaystackWebhook processes payment provider event notifications.
// Paystack delivers at least once and retries on non-2xx, so the handler
// acknowledges 200 even when the referenced order is unknown or a DB step
// failed; only a bad signature (401) or a persistence/parse failure (500)
// returns an error status.
func HandlePaystackWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("x-paystack-signature"))
	secret := env.GetEnv("PAYSTACK_SECRET_KEY", "")

	// The signature is computed over the exact raw bytes. A missing header is
	// rejected the same as a mismatch; unsigned webhooks are never processed.
	if !paystack.VerifyWebhookSignature(rawBody, signature, secret) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}

	event, err := paystack.ParseWebhookEvent(rawBody)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "invalid_payload"})
	}

	svc := payments.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	created, stored, err := svc.RecordWebhookEvent(ctx, payments.WebhookEventInput{
		Provider:        webhookProvider,
		ProviderEventID: providerEventID(event),
		EventType:       event.Event,
		PayloadJSON:     string(rawBody),
		SignatureValid:  true,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_persist_failed"})
	}
	if !created {
		// Replayed delivery: acknowledged, side effects already applied.
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true, "duplicate": true})
	}

	switch strings.ToLower(strings.TrimSpace(event.Event)) {
	case paystack.EventChargeSuccess:
		return handleChargeSuccess(c, ctx, svc, stored.ID, rawBody, event)
	case paystack.EventChargeFailed:
		return handleChargeFailed(c, ctx, svc, stored.ID, event)
	default:
		if paystack.IsTransferEvent(event.Event) {
			// Payout tracking is not implemented; transfer events are logged only.
			log.Printf("paystack transfer event %s received, no state change", event.Event)
		} else {
			log.Printf("unhandled paystack event %s, ignoring", event.Event)
		}
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, nil)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true, "ignored": true})
	}
}

func handleChargeSuccess(c *fiber.Ctx, ctx context.Context, svc *payments.Service, eventID uint, rawBody []byte, event *paystack.WebhookEvent) error {
	charge, err := paystack.ParseChargeEvent(event.Data)
	if err != nil {
		_ = svc.MarkWebhookProcessed(ctx, eventID, err)
		log.Printf("charge.success payload could not be parsed: %v", err)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
	}

	order, err := svc.ApplyChargeSuccess(ctx, payments.ChargeResult{
		Reference:      charge.Reference,
		AmountKobo:     charge.AmountKobo,
		Channel:        charge.Channel,
		PaidAt:         charge.PaidAt(),
		RawPayloadJSON: string(rawBody),
	})
	_ = svc.MarkWebhookProcessed(ctx, eventID, err)
	if err != nil {
		// Unknown references are acknowledged so the provider stops retrying.
		log.Printf("charge.success for %s not applied: %v", charge.Reference, err)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
	}

	if email := strings.TrimSpace(charge.Customer.Email); email != "" {
		// Best effort, the payment is already confirmed.
		_ = mail.SendOrderConfirmation(email, order.OrderNumber, order.AmountKobo)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
}

func handleChargeFailed(c *fiber.Ctx, ctx context.Context, svc *payments.Service, eventID uint, event *paystack.WebhookEvent) error {
	charge, err := paystack.ParseChargeEvent(event.Data)
	if err != nil {
		_ = svc.MarkWebhookProcessed(ctx, eventID, err)
		log.Printf("charge.failed payload could not be parsed: %v", err)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
	}

	_, err = svc.ApplyChargeFailed(ctx, payments.ChargeResult{
		Reference: charge.Reference,
	})
	_ = svc.MarkWebhookProcessed(ctx, eventID, err)
	if err != nil {
		log.Printf("charge.failed for %s not applied: %v", charge.Reference, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
}

// providerEventID derives a stable dedup key for a delivery. Paystack sends
// no event id header, so charge events key on (event tag, charge id); other
// payloads fall back to a body hash inside the payments service.
func providerEventID(event *paystack.WebhookEvent) string {
	charge, err := paystack.ParseChargeEvent(event.Data)
	if err != nil || charge.ID == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", strings.ToLower(strings.TrimSpace(event.Event)), charge.ID)
}
