package repositories

import (
	"context"
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LLMSettings struct {
	db *gorm.DB
}

func NewLLMSettingsRepository(db *gorm.DB) *LLMSettings {
	return &LLMSettings{db: db}
}

func (repo *LLMSettings) GetByUser(ctx context.Context, userID int64) (*models.LLMSettings, error) {

	var settings models.LLMSettings
	if err := repo.db.WithContext(ctx).First(&settings, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (repo *LLMSettings) Upsert(ctx context.Context, settings models.LLMSettings) error {
	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&settings).Error
}
