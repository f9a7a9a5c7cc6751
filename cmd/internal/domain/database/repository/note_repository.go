package repository

import (
	"errors"
	"orbit/cmd/internal/domain/entity"
	"strings"

	"gorm.io/gorm"
)

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

// FindAllByUser returns the notes of a user, most recently updated first,
// optionally narrowed to the ones carrying the given tag.
func (d *DefaultNoteRepository) FindAllByUser(userID int64, tag string) ([]*entity.Note, error) {
	query := d.db.Where("user_id = ?", userID)
	if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
		// Tags are space separated, pad both sides to match whole words only
		query = query.Where("(' ' || tags || ' ') LIKE ?", "% "+tag+" %")
	}

	var notes []*entity.Note
	err := query.Order("updated_at DESC").Order("id DESC").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) FindByID(id int64) (*entity.Note, error) {
	var note entity.Note
	err := d.db.First(&note, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (d *DefaultNoteRepository) Create(note *entity.Note) error {
	return d.db.Create(note).Error
}

func (d *DefaultNoteRepository) Save(note *entity.Note) error {
	return d.db.Save(note).Error
}

func (d *DefaultNoteRepository) Delete(note *entity.Note) error {
	return d.db.Delete(note).Error
}
