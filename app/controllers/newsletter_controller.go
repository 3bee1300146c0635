package controllers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mnasmart/onlinemart/app/models"
	"github.com/mnasmart/onlinemart/app/repository"
	"github.com/mnasmart/onlinemart/internal/pkg/mail"
)

// Throwaway inboxes that only exist to farm signup incentives.
var disposableEmailDomains = map[string]struct{}{
	"tempmail.com":      {},
	"mailinator.com":    {},
	"guerrillamail.com": {},
	"10minutemail.com":  {},
	"trashmail.com":     {},
	"yopmail.com":       {},
}

type newsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleNewsletterSubscribe upserts a newsletter subscription keyed on email.
// Re-submitting an address updates the stored row instead of duplicating it.
func HandleNewsletterSubscribe(c *fiber.Ctx) error {
	var req newsletterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	req.Email = email
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Please provide a valid email address",
		})
	}
	if IsDisposableEmailDomain(email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Disposable email addresses are not accepted",
		})
	}

	sub := &models.NewsletterSubscription{
		Email:  email,
		Status: models.SubscriptionStatusActive,
	}
	repo := repository.GetGlobalFactory().GetNewsletterRepository()
	if err := repo.Upsert(sub); err != nil {
		log.Printf("newsletter upsert failed for %s: %v", email, err)
		return serverError(c, "Subscription could not be saved")
	}

	// Best effort, the subscription row is already stored.
	_ = mail.SendNewsletterWelcome(email)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "You are subscribed to the newsletter",
	})
}

// IsDisposableEmailDomain reports whether the address belongs to a known
// disposable-email provider.
func IsDisposableEmailDomain(email string) bool {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return false
	}
	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))
	_, blocked := disposableEmailDomains[domain]
	return blocked
}
