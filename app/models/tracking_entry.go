package models

import "time"

// TrackingEntry is an append-only history row describing an order status
// change. Entries produced by webhook processing carry the provider reference
// so a replayed delivery does not append a second identical row.
type TrackingEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	Status    string    `gorm:"type:varchar(30);index:ux_tracking_ref,unique,priority:2" json:"status"`
	Note      string    `gorm:"type:text" json:"note"`
	Reference string    `gorm:"type:varchar(100);index:ux_tracking_ref,unique,priority:1" json:"reference"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
