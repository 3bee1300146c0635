package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"
)

func signBody(payload []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"event":"charge.success","data":{"reference":"mnas_abc"}}`)
	secret := "sk_test_secret"

	validSig := signBody(payload, secret)
	if !VerifyWebhookSignature(payload, validSig, secret) {
		t.Fatalf("expected signature to validate")
	}

	// Uppercase hex must validate too.
	if !VerifyWebhookSignature(payload, strings.ToUpper(validSig), secret) {
		t.Fatalf("expected uppercase hex signature to validate")
	}

	if VerifyWebhookSignature(payload, "deadbeef", secret) {
		t.Fatalf("expected invalid signature to fail")
	}
}

func TestVerifyWebhookSignature_BodyMutation(t *testing.T) {
	payload := []byte(`{"event":"charge.success","data":{"reference":"mnas_abc"}}`)
	secret := "sk_test_secret"
	validSig := signBody(payload, secret)

	// A single flipped byte anywhere in the body must fail verification.
	for i := range payload {
		mutated := append([]byte(nil), payload...)
		mutated[i] ^= 0x01
		if VerifyWebhookSignature(mutated, validSig, secret) {
			t.Fatalf("expected mutation at byte %d to fail verification", i)
		}
	}
}

func TestVerifyWebhookSignature_MissingInputs(t *testing.T) {
	payload := []byte(`{}`)
	secret := "sk_test_secret"

	if VerifyWebhookSignature(payload, "", secret) {
		t.Fatalf("expected missing signature header to fail")
	}
	if VerifyWebhookSignature(payload, signBody(payload, secret), "") {
		t.Fatalf("expected missing secret to fail")
	}
	if VerifyWebhookSignature(payload, "not-hex!", secret) {
		t.Fatalf("expected non-hex signature to fail")
	}
}
