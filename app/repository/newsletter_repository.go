package repository

import (
	"github.com/mnasmart/onlinemart/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type newsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository creates a newsletter repository backed by GORM.
func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

// Upsert inserts the subscription or, when the email already exists, updates
// the existing row. A second submission of the same address never duplicates.
func (r *newsletterRepository) Upsert(sub *models.NewsletterSubscription) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "email"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"status",
			"updated_at",
		}),
	}).Create(sub).Error; err != nil {
		return err
	}

	return r.db.Where("email = ?", sub.Email).First(sub).Error
}

func (r *newsletterRepository) GetByEmail(email string) (*models.NewsletterSubscription, error) {
	var sub models.NewsletterSubscription
	if err := r.db.Where("email = ?", email).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}
