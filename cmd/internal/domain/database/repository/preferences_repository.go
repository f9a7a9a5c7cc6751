package repository

import (
	"errors"
	"orbit/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultPreferencesRepository struct {
	db *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) *DefaultPreferencesRepository {
	return &DefaultPreferencesRepository{db: db}
}

func (p *DefaultPreferencesRepository) FindByUserID(userID int64) (*entity.UserPreferences, error) {
	var prefs entity.UserPreferences
	err := p.db.Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (p *DefaultPreferencesRepository) Create(prefs *entity.UserPreferences) error {
	return p.db.Create(prefs).Error
}

func (p *DefaultPreferencesRepository) Save(prefs *entity.UserPreferences) error {
	return p.db.Save(prefs).Error
}

// DisableCalendar turns the Google Calendar integration off, if the row exists.
func (p *DefaultPreferencesRepository) DisableCalendar(userID int64, now int64) error {
	return p.db.Model(&entity.UserPreferences{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"google_calendar_enabled": false,
			"google_calendar_sync":    false,
			"google_calendar_id":      "",
			"updated_at":              now,
		}).Error
}
