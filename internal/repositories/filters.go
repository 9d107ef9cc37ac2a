package repositories

import (
	"context"
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Filters struct {
	db *gorm.DB
}

func NewFiltersRepository(db *gorm.DB) *Filters {
	return &Filters{db: db}
}

// GetByUser returns nil without an error when the user saved no filters yet.
func (repo *Filters) GetByUser(ctx context.Context, userID int64) (*models.SearchFilters, error) {

	var filters models.SearchFilters
	if err := repo.db.WithContext(ctx).First(&filters, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &filters, nil
}

func (repo *Filters) GetAll(ctx context.Context) ([]models.SearchFilters, error) {

	var filters []models.SearchFilters
	if err := repo.db.WithContext(ctx).Find(&filters).Error; err != nil {
		return nil, err
	}
	return filters, nil
}

func (repo *Filters) Upsert(ctx context.Context, filters models.SearchFilters) error {
	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&filters).Error
}
