package repository

import (
	"errors"
	"orbit/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultCheckInRepository struct {
	db *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) *DefaultCheckInRepository {
	return &DefaultCheckInRepository{db: db}
}

// FindSince returns the check-ins on or after the given day, newest first.
func (c *DefaultCheckInRepository) FindSince(userID int64, day string) ([]*entity.CheckIn, error) {
	var checkIns []*entity.CheckIn
	err := c.db.Where("user_id = ? AND day >= ?", userID, day).
		Order("day DESC").
		Find(&checkIns).Error
	if err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (c *DefaultCheckInRepository) FindAllByUser(userID int64) ([]*entity.CheckIn, error) {
	var checkIns []*entity.CheckIn
	err := c.db.Where("user_id = ?", userID).Order("day DESC").Find(&checkIns).Error
	if err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (c *DefaultCheckInRepository) FindByDay(userID int64, day string) (*entity.CheckIn, error) {
	var checkIn entity.CheckIn
	err := c.db.Where("user_id = ? AND day = ?", userID, day).First(&checkIn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &checkIn, nil
}

// Create fails with gorm.ErrDuplicatedKey when the user already checked in that day.
func (c *DefaultCheckInRepository) Create(checkIn *entity.CheckIn) error {
	return c.db.Create(checkIn).Error
}
