package repository

import (
	"errors"
	"orbit/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultOAuthStateRepository struct {
	db *gorm.DB
}

func NewOAuthStateRepository(db *gorm.DB) *DefaultOAuthStateRepository {
	return &DefaultOAuthStateRepository{db: db}
}

func (o *DefaultOAuthStateRepository) Create(state *entity.OAuthState) error {
	return o.db.Create(state).Error
}

// Consume deletes the state and returns it, so each state is usable once.
// It returns nil when the state is unknown.
func (o *DefaultOAuthStateRepository) Consume(value string) (*entity.OAuthState, error) {
	var state entity.OAuthState
	err := o.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("state = ?", value).First(&state).Error; err != nil {
			return err
		}
		return tx.Delete(&state).Error
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (o *DefaultOAuthStateRepository) DeleteExpired(before int64) (int64, error) {
	result := o.db.Where("expires_at <= ?", before).Delete(&entity.OAuthState{})
	return result.RowsAffected, result.Error
}
