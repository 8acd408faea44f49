package cache

import (
	"neuralife-notes/neuralife/models"
)

// AppendVersion adds a snapshot record. Versions are append-only: there
// is no update path and no dedup.
func (s *Store) AppendVersion(version models.NoteVersion) error {
	// Force a fresh autoincrement id.
	version.ID = 0
	return s.write(func() error {
		return s.db.DB.Create(&version).Error
	})
}

// GetVersionsForNote returns the note's snapshots, newest first.
func (s *Store) GetVersionsForNote(noteID string) ([]models.NoteVersion, error) {
	var versions []models.NoteVersion
	err := s.db.DB.Where("note_id = ?", noteID).
		Order("created_at DESC").
		Find(&versions).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return versions, nil
}

// DeleteVersionsForNote is the only way version records are removed.
func (s *Store) DeleteVersionsForNote(noteID string) error {
	return s.write(func() error {
		return s.db.DB.Delete(&models.NoteVersion{}, "note_id = ?", noteID).Error
	})
}
