package models

import "time"

const (
	TransactionStatusSuccess = "success"
	TransactionStatusFailed  = "failed"
)

// Transaction is the one-to-one payment record of an order. Repeated webhook
// delivery for the same order overwrites this row instead of duplicating it
// (upsert keyed on order_id).
type Transaction struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	OrderID    uint       `gorm:"uniqueIndex;not null" json:"order_id"`
	Reference  string     `gorm:"type:varchar(100);index" json:"reference"`
	Method     string     `gorm:"type:varchar(30)" json:"method"`
	AmountKobo int64      `gorm:"not null" json:"amount_kobo"`
	Status     string     `gorm:"type:varchar(20);index" json:"status"`
	Channel    string     `gorm:"type:varchar(30)" json:"channel"`
	PaidAt     *time.Time `gorm:"type:timestamp;default:null" json:"paid_at,omitempty"`
	RawPayload string     `gorm:"type:longtext" json:"raw_payload"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
