package repository

import (
	"context"
	"fmt"
	"registration/domain"

	"gorm.io/gorm"
)

const saveBatchSize = 100

type postgresRegistrationRepository struct {
	db *gorm.DB
}

func NewPostgresRegistrationRepository(database *gorm.DB) domain.RegistrationRepo {
	return &postgresRegistrationRepository{
		db: database,
	}
}

func (pr *postgresRegistrationRepository) Load(ctx context.Context) ([]domain.Registration, error) {
	var records []domain.Registration
	if err := pr.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("could not get registrations: %w", err)
	}
	if records == nil {
		records = []domain.Registration{}
	}
	return records, nil
}

// Save replaces the table contents in one transaction.
func (pr *postgresRegistrationRepository) Save(ctx context.Context, records []domain.Registration) error {
	return pr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Registration{}).Error
		if err != nil {
			return fmt.Errorf("could not clear registrations: %w", err)
		}

		if len(records) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(&records, saveBatchSize).Error; err != nil {
			return fmt.Errorf("could not insert registrations: %w", err)
		}
		return nil
	})
}
