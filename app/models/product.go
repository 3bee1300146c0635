package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Slug        string         `gorm:"type:varchar(150);uniqueIndex" json:"slug" validate:"required,max=150"`
	Name        string         `gorm:"type:varchar(200)" json:"name" validate:"required,max=200"`
	Description string         `gorm:"type:text" json:"description"`
	PriceKobo   int64          `gorm:"not null" json:"price_kobo" validate:"gte=0"`
	Stock       int            `gorm:"default:0" json:"stock" validate:"gte=0"`
	ImageURL    string         `gorm:"type:varchar(255)" json:"image_url"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	SellerID    uint           `gorm:"index" json:"seller_id"`
	Seller      User           `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
