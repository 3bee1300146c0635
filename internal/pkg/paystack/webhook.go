package paystack

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	EventChargeSuccess    = "charge.success"
	EventChargeFailed     = "charge.failed"
	EventTransferSuccess  = "transfer.success"
	EventTransferFailed   = "transfer.failed"
	EventTransferReversed = "transfer.reversed"
)

// WebhookEvent is the envelope Paystack posts to the webhook endpoint.
type WebhookEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ChargeEvent carries the fields of a charge.* event body this system acts on.
type ChargeEvent struct {
	ID         int64  `json:"id"`
	Reference  string `json:"reference"`
	AmountKobo int64  `json:"amount"`
	Status     string `json:"status"`
	Channel    string `json:"channel"`
	PaidAtRaw  string `json:"paid_at"`
	Customer   struct {
		Email string `json:"email"`
	} `json:"customer"`
}

// ParseWebhookEvent decodes the raw webhook body.
func ParseWebhookEvent(raw []byte) (*WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ev.Event) == "" {
		return nil, errors.New("webhook payload has no event type")
	}
	return &ev, nil
}

// ParseChargeEvent decodes the data object of a charge.* event.
func ParseChargeEvent(data json.RawMessage) (*ChargeEvent, error) {
	var ev ChargeEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ev.Reference) == "" {
		return nil, errors.New("charge event has no reference")
	}
	return &ev, nil
}

// PaidAt parses the provider's paid_at timestamp, nil when absent or invalid.
func (e *ChargeEvent) PaidAt() *time.Time {
	raw := strings.TrimSpace(e.PaidAtRaw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}

// IsTransferEvent reports whether the event tag belongs to the transfer
// family. Transfer events are acknowledged and logged only; payout tracking
// is not implemented.
func IsTransferEvent(eventType string) bool {
	switch strings.ToLower(strings.TrimSpace(eventType)) {
	case EventTransferSuccess, EventTransferFailed, EventTransferReversed:
		return true
	default:
		return false
	}
}
