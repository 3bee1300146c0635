package repository

import (
	"github.com/mnasmart/onlinemart/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByAPITokenHash(hash string) (*models.User, error)
	Update(user *models.User) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// ProductRepository defines the interface for product catalog operations
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	ListActive(offset, limit int) ([]models.Product, error)
	Update(product *models.Product) error
	Count() (int64, error)
}

// OrderRepository defines the interface for order-related database operations
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderNumber(orderNumber string) (*models.Order, error)
	GetByPaymentReference(reference string) (*models.Order, error)
	ListByUserID(userID uint, offset, limit int) ([]models.Order, error)
	GetTrackingHistory(orderID uint) ([]models.TrackingEntry, error)
}

// NotificationRepository defines the interface for user notifications
type NotificationRepository interface {
	ListByUserID(userID uint, offset, limit int) ([]models.Notification, error)
	GetByID(id uint) (*models.Notification, error)
	MarkRead(id uint) error
}

// NewsletterRepository defines the interface for newsletter subscriptions
type NewsletterRepository interface {
	Upsert(sub *models.NewsletterSubscription) error
	GetByEmail(email string) (*models.NewsletterSubscription, error)
}
