package payments

import (
	"context"
	"testing"
	"time"

	"github.com/mnasmart/onlinemart/app/models"
	"gorm.io/gorm"
)

// fakeRepository mimics the unique-key behavior of the GORM repository.
type fakeRepository struct {
	orders        map[string]*models.Order
	transactions  map[uint]*models.Transaction
	notifications map[string]*models.Notification
	tracking      map[string]*models.TrackingEntry
	webhookEvents map[string]*models.WebhookEvent
	nextEventID   uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		orders:        make(map[string]*models.Order),
		transactions:  make(map[uint]*models.Transaction),
		notifications: make(map[string]*models.Notification),
		tracking:      make(map[string]*models.TrackingEntry),
		webhookEvents: make(map[string]*models.WebhookEvent),
	}
}

func (r *fakeRepository) GetOrderByPaymentReference(reference string) (*models.Order, error) {
	order, ok := r.orders[reference]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeRepository) UpdateOrderStatus(orderID uint, paymentStatus, orderStatus, status string) error {
	for _, order := range r.orders {
		if order.ID == orderID {
			order.PaymentStatus = paymentStatus
			order.OrderStatus = orderStatus
			order.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRepository) UpsertTransaction(tx *models.Transaction) error {
	if existing, ok := r.transactions[tx.OrderID]; ok {
		tx.ID = existing.ID
	} else {
		tx.ID = uint(len(r.transactions) + 1)
	}
	copied := *tx
	r.transactions[tx.OrderID] = &copied
	return nil
}

func (r *fakeRepository) CreateNotificationIfNotExists(n *models.Notification) (bool, error) {
	key := n.Reference + "|" + n.Type
	if _, ok := r.notifications[key]; ok {
		return false, nil
	}
	copied := *n
	r.notifications[key] = &copied
	return true, nil
}

func (r *fakeRepository) CreateTrackingEntryIfNotExists(e *models.TrackingEntry) (bool, error) {
	key := e.Reference + "|" + e.Status
	if _, ok := r.tracking[key]; ok {
		return false, nil
	}
	copied := *e
	r.tracking[key] = &copied
	return true, nil
}

func (r *fakeRepository) CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	key := event.Provider + "|" + event.ProviderEventID
	if stored, ok := r.webhookEvents[key]; ok {
		return false, stored, nil
	}
	r.nextEventID++
	event.ID = r.nextEventID
	copied := *event
	r.webhookEvents[key] = &copied
	return true, &copied, nil
}

func (r *fakeRepository) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	for _, event := range r.webhookEvents {
		if event.ID == id {
			event.ProcessedAt = &now
			event.ProcessingError = processingError
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func seedOrder(r *fakeRepository) *models.Order {
	order := &models.Order{
		ID:               1,
		OrderNumber:      "MNAS-TEST0001",
		UserID:           7,
		PaymentReference: "mnas_abc",
		AmountKobo:       10000,
		PaymentStatus:    models.PaymentStatusPending,
		OrderStatus:      models.OrderStatusPending,
		Status:           models.OrderStatusPending,
	}
	r.orders[order.PaymentReference] = order
	return order
}

func TestApplyChargeSuccess(t *testing.T) {
	repo := newFakeRepository()
	seedOrder(repo)
	svc := NewService(repo)

	charge := ChargeResult{
		Reference:      "mnas_abc",
		AmountKobo:     10000,
		Channel:        "card",
		RawPayloadJSON: `{"event":"charge.success"}`,
	}

	order, err := svc.ApplyChargeSuccess(context.Background(), charge)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.PaymentStatus != models.PaymentStatusCompleted {
		t.Fatalf("payment_status = %q, want completed", order.PaymentStatus)
	}
	if order.OrderStatus != models.OrderStatusConfirmed || order.Status != models.OrderStatusConfirmed {
		t.Fatalf("order statuses = %q/%q, want confirmed", order.OrderStatus, order.Status)
	}

	stored := repo.orders["mnas_abc"]
	if stored.PaymentStatus != models.PaymentStatusCompleted {
		t.Fatalf("stored payment_status = %q, want completed", stored.PaymentStatus)
	}

	tx, ok := repo.transactions[order.ID]
	if !ok {
		t.Fatalf("expected transaction row for order %d", order.ID)
	}
	if tx.Status != models.TransactionStatusSuccess || tx.AmountKobo != 10000 {
		t.Fatalf("unexpected transaction %+v", tx)
	}

	if len(repo.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(repo.notifications))
	}
	if len(repo.tracking) != 1 {
		t.Fatalf("expected 1 tracking entry, got %d", len(repo.tracking))
	}
}

func TestApplyChargeSuccess_Replay(t *testing.T) {
	repo := newFakeRepository()
	seedOrder(repo)
	svc := NewService(repo)

	charge := ChargeResult{Reference: "mnas_abc", AmountKobo: 10000, Channel: "card"}
	for i := 0; i < 3; i++ {
		if _, err := svc.ApplyChargeSuccess(context.Background(), charge); err != nil {
			t.Fatalf("replay %d: unexpected error: %v", i, err)
		}
	}

	// The transaction is overwritten, the side-effect rows stay singular.
	if len(repo.transactions) != 1 {
		t.Fatalf("expected 1 transaction after replay, got %d", len(repo.transactions))
	}
	if len(repo.notifications) != 1 {
		t.Fatalf("expected 1 notification after replay, got %d", len(repo.notifications))
	}
	if len(repo.tracking) != 1 {
		t.Fatalf("expected 1 tracking entry after replay, got %d", len(repo.tracking))
	}
}

func TestApplyChargeSuccess_UnknownReference(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.ApplyChargeSuccess(context.Background(), ChargeResult{Reference: "mnas_missing"})
	if err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if len(repo.notifications) != 0 || len(repo.tracking) != 0 || len(repo.transactions) != 0 {
		t.Fatalf("unknown reference must not create side-effect rows")
	}
}

func TestApplyChargeFailed(t *testing.T) {
	repo := newFakeRepository()
	seedOrder(repo)
	svc := NewService(repo)

	order, err := svc.ApplyChargeFailed(context.Background(), ChargeResult{Reference: "mnas_abc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.PaymentStatus != models.PaymentStatusFailed {
		t.Fatalf("payment_status = %q, want failed", order.PaymentStatus)
	}
	// The order itself stays pending so the buyer can retry.
	if repo.orders["mnas_abc"].OrderStatus != models.OrderStatusPending {
		t.Fatalf("order_status should stay pending, got %q", repo.orders["mnas_abc"].OrderStatus)
	}
	if len(repo.notifications) != 1 {
		t.Fatalf("expected 1 failure notification, got %d", len(repo.notifications))
	}

	// A later successful charge must still produce its own notification.
	if _, err := svc.ApplyChargeSuccess(context.Background(), ChargeResult{Reference: "mnas_abc", AmountKobo: 10000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.notifications) != 2 {
		t.Fatalf("expected distinct failure and success notifications, got %d", len(repo.notifications))
	}
}

func TestRecordWebhookEvent_Dedup(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	in := WebhookEventInput{
		Provider:        "paystack",
		ProviderEventID: "charge.success:302961",
		EventType:       "charge.success",
		PayloadJSON:     `{"event":"charge.success"}`,
		SignatureValid:  true,
	}

	created, first, err := svc.RecordWebhookEvent(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatalf("first delivery should create the event")
	}

	created, second, err := svc.RecordWebhookEvent(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatalf("replayed delivery must be detected as duplicate")
	}
	if second.ID != first.ID {
		t.Fatalf("duplicate should resolve to the stored event")
	}
}

func TestRecordWebhookEvent_HashFallback(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	payload := `{"event":"subscription.create"}`
	created, _, err := svc.RecordWebhookEvent(context.Background(), WebhookEventInput{
		Provider:    "paystack",
		EventType:   "subscription.create",
		PayloadJSON: payload,
	})
	if err != nil || !created {
		t.Fatalf("first delivery: created=%v err=%v", created, err)
	}

	// The same payload without an event id hashes to the same key.
	created, _, err = svc.RecordWebhookEvent(context.Background(), WebhookEventInput{
		Provider:    "paystack",
		EventType:   "subscription.create",
		PayloadJSON: payload,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatalf("identical payload should dedup via body hash")
	}

	for key := range repo.webhookEvents {
		if key == "paystack|" {
			t.Fatalf("event id fallback must not be empty")
		}
	}
	if len(repo.webhookEvents) != 1 {
		t.Fatalf("expected 1 stored event, got %d", len(repo.webhookEvents))
	}
}
