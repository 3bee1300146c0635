package payments

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mnasmart/onlinemart/app/models"
	"gorm.io/gorm"
)

// ErrOrderNotFound is returned when a charge event references no known order.
// The webhook endpoint still acknowledges such events so the provider stops
// retrying them.
var ErrOrderNotFound = errors.New("no order matches payment reference")

// Service applies payment provider events to orders and their dependent
// records. Each step of a multi-step update is attempted even when an earlier
// step failed; failures are logged, not propagated, so a crash or partial
// outage degrades to a partially-updated order instead of a lost event.
type Service struct {
	repo Repository
}

// NewService creates a payments service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a payments service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// RecordWebhookEvent persists webhook payloads idempotently. The returned
// bool is false when the provider already delivered this event, in which case
// no side effects may be re-applied.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.WebhookEvent, error) {
	_ = ctx
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.WebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}

// ApplyChargeSuccess confirms the order matching the charge reference: order
// statuses flip to completed/confirmed, the transaction row is upserted keyed
// on the order, and a notification plus tracking entry are inserted, each
// deduplicated on the provider reference so replayed deliveries do not
// accumulate rows.
func (s *Service) ApplyChargeSuccess(ctx context.Context, charge ChargeResult) (*models.Order, error) {
	_ = ctx
	reference := strings.TrimSpace(charge.Reference)
	if reference == "" {
		return nil, errors.New("charge reference is required")
	}

	order, err := s.repo.GetOrderByPaymentReference(reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("charge.success for unknown reference %s, ignoring", reference)
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := s.repo.UpdateOrderStatus(order.ID, models.PaymentStatusCompleted, models.OrderStatusConfirmed, models.OrderStatusConfirmed); err != nil {
		log.Printf("failed to update order %s after charge.success: %v", order.OrderNumber, err)
	} else {
		order.PaymentStatus = models.PaymentStatusCompleted
		order.OrderStatus = models.OrderStatusConfirmed
		order.Status = models.OrderStatusConfirmed
	}

	tx := &models.Transaction{
		OrderID:    order.ID,
		Reference:  reference,
		Method:     "paystack",
		AmountKobo: charge.AmountKobo,
		Status:     models.TransactionStatusSuccess,
		Channel:    charge.Channel,
		PaidAt:     charge.PaidAt,
		RawPayload: charge.RawPayloadJSON,
	}
	if err := s.repo.UpsertTransaction(tx); err != nil {
		log.Printf("failed to upsert transaction for order %s: %v", order.OrderNumber, err)
	}

	notification := &models.Notification{
		UserID:    order.UserID,
		Type:      models.NotificationTypePayment,
		Content:   fmt.Sprintf("Payment for order %s was confirmed.", order.OrderNumber),
		Reference: reference,
	}
	if _, err := s.repo.CreateNotificationIfNotExists(notification); err != nil {
		log.Printf("failed to insert payment notification for order %s: %v", order.OrderNumber, err)
	}

	entry := &models.TrackingEntry{
		OrderID:   order.ID,
		Status:    models.OrderStatusConfirmed,
		Note:      "Payment confirmed, order is being prepared.",
		Reference: reference,
	}
	if _, err := s.repo.CreateTrackingEntryIfNotExists(entry); err != nil {
		log.Printf("failed to insert tracking entry for order %s: %v", order.OrderNumber, err)
	}

	return order, nil
}

// ApplyChargeFailed marks the matching order's payment as failed and inserts
// a failure notification. The order itself stays pending so the buyer can
// retry payment.
func (s *Service) ApplyChargeFailed(ctx context.Context, charge ChargeResult) (*models.Order, error) {
	_ = ctx
	reference := strings.TrimSpace(charge.Reference)
	if reference == "" {
		return nil, errors.New("charge reference is required")
	}

	order, err := s.repo.GetOrderByPaymentReference(reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("charge.failed for unknown reference %s, ignoring", reference)
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := s.repo.UpdateOrderStatus(order.ID, models.PaymentStatusFailed, order.OrderStatus, order.Status); err != nil {
		log.Printf("failed to update order %s after charge.failed: %v", order.OrderNumber, err)
	} else {
		order.PaymentStatus = models.PaymentStatusFailed
	}

	notification := &models.Notification{
		UserID:    order.UserID,
		Type:      models.NotificationTypePaymentFailed,
		Content:   fmt.Sprintf("Payment for order %s failed. Please try again.", order.OrderNumber),
		Reference: reference,
	}
	if _, err := s.repo.CreateNotificationIfNotExists(notification); err != nil {
		log.Printf("failed to insert failure notification for order %s: %v", order.OrderNumber, err)
	}

	return order, nil
}
