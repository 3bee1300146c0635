package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	NotificationTypeOrder         = "order"
	NotificationTypePayment       = "payment"
	NotificationTypePaymentFailed = "payment_failed"
	NotificationTypeSystem        = "system"
)

type Notification struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Type    string `gorm:"type:varchar(50);index:ux_notifications_ref,unique,priority:2" json:"type" validate:"oneof=order payment payment_failed system"`
	Content string `gorm:"type:text" json:"content"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`
	// Reference carries the provider reference of the payment event that
	// produced this notification. The unique index over (reference, type)
	// keeps replayed webhook deliveries from accumulating duplicate rows.
	Reference string         `gorm:"type:varchar(100);index:ux_notifications_ref,unique,priority:1" json:"reference"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarkAsRead marks a notification as read.
func (n *Notification) MarkAsRead(db *gorm.DB) error {
	n.IsRead = true
	return db.Model(n).Update("is_read", true).Error
}
