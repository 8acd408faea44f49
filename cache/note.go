package cache

import (
	"neuralife-notes/neuralife/models"

	"gorm.io/gorm/clause"
)

// PutNote inserts or overwrites the record keyed by its id. The synced
// flag is forced to false regardless of what the caller passed; use
// MarkNoteSynced once the remote write is confirmed.
func (s *Store) PutNote(note models.Note) error {
	note.Synced = false
	return s.write(func() error {
		return s.db.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&note).Error
	})
}

// GetNotesByOwner returns the owner's notes ordered by updated time,
// newest first.
func (s *Store) GetNotesByOwner(ownerID string) ([]models.Note, error) {
	var notes []models.Note
	err := s.db.DB.Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return notes, nil
}

func (s *Store) GetNoteByID(id string) (models.Note, error) {
	var note models.Note
	if err := s.db.DB.First(&note, "id = ?", id).Error; err != nil {
		return models.Note{}, wrapRead(err)
	}
	return note, nil
}

// DeleteNote removes the record unconditionally. Deleting an id that
// does not exist is not an error.
func (s *Store) DeleteNote(id string) error {
	return s.write(func() error {
		return s.db.DB.Delete(&models.Note{}, "id = ?", id).Error
	})
}

// GetUnsyncedNotes returns every unsynced note across all owners,
// oldest update first, so a backlog flush replays in write order.
func (s *Store) GetUnsyncedNotes() ([]models.Note, error) {
	var notes []models.Note
	err := s.db.DB.Where("synced = ?", false).
		Order("updated_at ASC").
		Find(&notes).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return notes, nil
}

// MarkNoteSynced flips the synced flag without touching other fields.
func (s *Store) MarkNoteSynced(id string) error {
	result := s.db.DB.Model(&models.Note{}).
		Where("id = ?", id).
		Update("synced", true)
	if result.Error != nil {
		return wrapRead(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
