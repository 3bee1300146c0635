package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"

	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	OrderNumber      string         `gorm:"type:varchar(40);uniqueIndex" json:"order_number" validate:"required"`
	UserID           uint           `gorm:"index" json:"user_id"`
	User             User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PaymentReference string         `gorm:"type:varchar(100);uniqueIndex" json:"payment_reference"`
	AmountKobo       int64          `gorm:"not null" json:"amount_kobo" validate:"gt=0"`
	PaymentStatus    string         `gorm:"type:varchar(20);default:'pending';index" json:"payment_status" validate:"oneof=pending completed failed"`
	OrderStatus      string         `gorm:"type:varchar(20);default:'pending'" json:"order_status"`
	Status           string         `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ShippingAddress  string         `gorm:"type:text" json:"shipping_address"`
	Items            []OrderItem    `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt        time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

type OrderItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       uint      `gorm:"index;not null" json:"order_id"`
	ProductID     uint      `gorm:"index;not null" json:"product_id"`
	Product       Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity      int       `gorm:"not null" json:"quantity" validate:"gt=0"`
	UnitPriceKobo int64     `gorm:"not null" json:"unit_price_kobo"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// NewOrderNumber generates a human-friendly unique order number.
func NewOrderNumber() string {
	return "MNAS-" + strings.ToUpper(uuid.New().String()[:8])
}

// NewPaymentReference generates the reference passed to the payment provider.
// The provider echoes it back in webhook events, which is how events are
// matched to orders.
func NewPaymentReference() string {
	return "mnas_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}
