package payments

import (
	"time"

	"github.com/mnasmart/onlinemart/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the payments service.
type Repository interface {
	GetOrderByPaymentReference(reference string) (*models.Order, error)
	UpdateOrderStatus(orderID uint, paymentStatus, orderStatus, status string) error
	UpsertTransaction(tx *models.Transaction) error
	CreateNotificationIfNotExists(n *models.Notification) (bool, error)
	CreateTrackingEntryIfNotExists(e *models.TrackingEntry) (bool, error)
	CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error)
	MarkWebhookProcessed(id uint, processingError string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a payments repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetOrderByPaymentReference(reference string) (*models.Order, error) {
	var order models.Order
	err := r.db.Where("payment_reference = ?", reference).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormRepository) UpdateOrderStatus(orderID uint, paymentStatus, orderStatus, status string) error {
	updates := map[string]interface{}{
		"payment_status": paymentStatus,
		"order_status":   orderStatus,
		"status":         status,
	}
	return r.db.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates).Error
}

func (r *gormRepository) UpsertTransaction(tx *models.Transaction) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "order_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"reference",
			"method",
			"amount_kobo",
			"status",
			"channel",
			"paid_at",
			"raw_payload",
			"updated_at",
		}),
	}).Create(tx).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return r.db.Where("order_id = ?", tx.OrderID).First(tx).Error
}

func (r *gormRepository) CreateNotificationIfNotExists(n *models.Notification) (bool, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "reference"},
			{Name: "type"},
		},
		DoNothing: true,
	}).Create(n)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *gormRepository) CreateTrackingEntryIfNotExists(e *models.TrackingEntry) (bool, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "reference"},
			{Name: "status"},
		},
		DoNothing: true,
	}).Create(e)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *gormRepository) CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.WebhookEvent
	if err := r.db.Where("provider = ? AND provider_event_id = ?", event.Provider, event.ProviderEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": processingError,
	}
	return r.db.Model(&models.WebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}
