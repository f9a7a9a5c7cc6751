package repository

import (
	"errors"
	"orbit/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultTaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *DefaultTaskRepository {
	return &DefaultTaskRepository{db: db}
}

// FindAllByUser returns the tasks of a user, newest first. A nil completed
// flag returns both states.
func (t *DefaultTaskRepository) FindAllByUser(userID int64, completed *bool) ([]*entity.Task, error) {
	query := t.db.Where("user_id = ?", userID)
	if completed != nil {
		query = query.Where("completed = ?", *completed)
	}

	var tasks []*entity.Task
	err := query.Order("created_at DESC").Order("id DESC").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (t *DefaultTaskRepository) FindByID(id int64) (*entity.Task, error) {
	var task entity.Task
	err := t.db.First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *DefaultTaskRepository) Create(task *entity.Task) error {
	return t.db.Create(task).Error
}

func (t *DefaultTaskRepository) Save(task *entity.Task) error {
	return t.db.Save(task).Error
}

func (t *DefaultTaskRepository) Delete(task *entity.Task) error {
	return t.db.Delete(task).Error
}
