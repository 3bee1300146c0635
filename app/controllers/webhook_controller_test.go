package controllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/mnasmart/onlinemart/internal/pkg/paystack"
)

func signWebhookBody(body []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Requests that fail signature verification must be rejected before any
// database access, so these cases run without a database.
func TestHandlePaystackWebhook_RejectsBadSignatures(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_secret")

	app := fiber.New()
	app.Post("/api/webhooks/paystack", HandlePaystackWebhook)

	body := []byte(`{"event":"charge.success","data":{"reference":"mnas_abc"}}`)

	post := func(payload []byte, signature string) int {
		req := httptest.NewRequest("POST", "/api/webhooks/paystack", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		if signature != "" {
			req.Header.Set("x-paystack-signature", signature)
		}
		resp, err := app.Test(req)
		assert.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	// Missing header is rejected exactly like a mismatch.
	assert.Equal(t, fiber.StatusUnauthorized, post(body, ""))
	assert.Equal(t, fiber.StatusUnauthorized, post(body, "deadbeef"))

	// A valid signature over different bytes must not carry over.
	mutated := append([]byte(nil), body...)
	mutated[0] ^= 0x01
	assert.Equal(t, fiber.StatusUnauthorized, post(mutated, signWebhookBody(body, "sk_test_secret")))

	// A signature computed with the wrong secret fails.
	assert.Equal(t, fiber.StatusUnauthorized, post(body, signWebhookBody(body, "sk_wrong_secret")))
}

func TestProviderEventID(t *testing.T) {
	ev, err := paystack.ParseWebhookEvent([]byte(`{"event":"charge.success","data":{"id":302961,"reference":"mnas_abc"}}`))
	assert.NoError(t, err)
	assert.Equal(t, "charge.success:302961", providerEventID(ev))

	// No charge id: the payments service falls back to a payload hash.
	ev, err = paystack.ParseWebhookEvent([]byte(`{"event":"transfer.success","data":{}}`))
	assert.NoError(t, err)
	assert.Equal(t, "", providerEventID(ev))
}
