package repository

import (
	"errors"
	"orbit/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *DefaultExpenseRepository {
	return &DefaultExpenseRepository{db: db}
}

// FindAllByUser returns expenses dated in [from, to), newest first.
// A zero bound is ignored.
func (e *DefaultExpenseRepository) FindAllByUser(userID int64, from, to int64) ([]*entity.Expense, error) {
	query := e.db.Where("user_id = ?", userID)
	if from > 0 {
		query = query.Where("date >= ?", from)
	}
	if to > 0 {
		query = query.Where("date < ?", to)
	}

	var expenses []*entity.Expense
	err := query.Order("date DESC").Order("id DESC").Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (e *DefaultExpenseRepository) FindByID(id int64) (*entity.Expense, error) {
	var expense entity.Expense
	err := e.db.First(&expense, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (e *DefaultExpenseRepository) Create(expense *entity.Expense) error {
	return e.db.Create(expense).Error
}

func (e *DefaultExpenseRepository) Save(expense *entity.Expense) error {
	return e.db.Save(expense).Error
}

func (e *DefaultExpenseRepository) Delete(expense *entity.Expense) error {
	return e.db.Delete(expense).Error
}
