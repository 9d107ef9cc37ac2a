package repositories

import (
	"context"
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Users struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *Users {
	return &Users{db: db}
}

// GetByID returns nil without an error when the profile was never filled in.
func (repo *Users) GetByID(ctx context.Context, userID int64) (*models.User, error) {

	var user models.User
	if err := repo.db.WithContext(ctx).First(&user, "telegram_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (repo *Users) Upsert(ctx context.Context, user models.User) error {
	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "telegram_id"}},
		UpdateAll: true,
	}).Create(&user).Error
}
