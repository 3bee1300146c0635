package models

import "time"

const (
	SubscriptionStatusActive       = "active"
	SubscriptionStatusUnsubscribed = "unsubscribed"
)

// NewsletterSubscription is keyed on email; re-submitting the same address
// updates the existing row instead of creating a duplicate.
type NewsletterSubscription struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"type:varchar(200);uniqueIndex;not null" json:"email" validate:"required,email"`
	Status         string     `gorm:"type:varchar(20);default:'active'" json:"status"`
	SubscribedAt   time.Time  `gorm:"autoCreateTime" json:"subscribed_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	UnsubscribedAt *time.Time `gorm:"type:timestamp;default:null" json:"unsubscribed_at,omitempty"`
}
