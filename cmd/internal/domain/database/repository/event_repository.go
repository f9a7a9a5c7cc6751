package repository

import (
	"errors"
	"orbit/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

// EventQuery narrows the events of a user. The range applies only when both
// bounds are set, an empty Type means every type.
type EventQuery struct {
	UserID int64
	From   *int64
	To     *int64
	Type   entity.EventType
}

// Between limits the query to events starting within [from, to].
func (q EventQuery) Between(from, to int64) EventQuery {
	q.From, q.To = &from, &to
	return q
}

type DefaultEventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *DefaultEventRepository {
	return &DefaultEventRepository{db: db}
}

func (e *DefaultEventRepository) FindAll(q EventQuery) ([]*entity.Event, error) {
	query := e.db.Where("user_id = ?", q.UserID)
	if q.From != nil && q.To != nil {
		query = query.Where("start_date >= ? AND start_date <= ?", *q.From, *q.To)
	}
	if q.Type != "" {
		query = query.Where("type = ?", q.Type)
	}

	var events []*entity.Event
	err := query.Order("start_date ASC").Order("id ASC").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (e *DefaultEventRepository) FindByID(id int64) (*entity.Event, error) {
	var event entity.Event
	err := e.db.First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &event, nil
}

// FindGoogleEventIDs returns the Google ids already imported for the user.
func (e *DefaultEventRepository) FindGoogleEventIDs(userID int64) ([]string, error) {
	var ids []string
	err := e.db.Model(&entity.Event{}).
		Where("user_id = ? AND google_event_id IS NOT NULL", userID).
		Pluck("google_event_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (e *DefaultEventRepository) Create(event *entity.Event) error {
	return e.db.Create(event).Error
}

func (e *DefaultEventRepository) Save(event *entity.Event) error {
	return e.db.Save(event).Error
}

func (e *DefaultEventRepository) Delete(event *entity.Event) error {
	return e.db.Delete(event).Error
}

func (e *DefaultEventRepository) DeleteByType(userID int64, eventType entity.EventType) (int64, error) {
	result := e.db.Where("user_id = ? AND type = ?", userID, eventType).Delete(&entity.Event{})
	return result.RowsAffected, result.Error
}
