package repository

import (
	"errors"
	"orbit/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

func (u *DefaultUserRepository) FindByID(id int64) (*entity.User, error) {
	var user entity.User
	err := u.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := u.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) FindBySub(sub string) (*entity.User, error) {
	var user entity.User
	err := u.db.Where("sub_uuid = ?", sub).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) Create(user *entity.User) error {
	return u.db.Create(user).Error
}

func (u *DefaultUserRepository) Save(user *entity.User) error {
	return u.db.Save(user).Error
}

// SaveInTx saves the user and runs beforeCommit in the same transaction.
// An error from either rolls the row back.
func (u *DefaultUserRepository) SaveInTx(user *entity.User, beforeCommit func() error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		return beforeCommit()
	})
}

// DeleteWithData removes the user and every row they own in a single transaction.
func (u *DefaultUserRepository) DeleteWithData(userID int64) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		owned := []any{
			&entity.Task{},
			&entity.Note{},
			&entity.Expense{},
			&entity.Event{},
			&entity.CheckIn{},
			&entity.UserPreferences{},
			&entity.OAuthState{},
			&entity.Connection{},
		}

		for _, model := range owned {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&entity.User{}, userID).Error
	})
}
