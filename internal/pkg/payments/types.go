package payments

import "time"

// ChargeResult is the provider-agnostic shape of a settled (or failed) charge
// used when applying webhook events to the matching order.
type ChargeResult struct {
	Reference      string
	AmountKobo     int64
	Channel        string
	PaidAt         *time.Time
	RawPayloadJSON string
}

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}
