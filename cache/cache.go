// Package cache implements the local persistence layer for notes,
// folders and note versions. Every record carries a synced flag; the
// store is the single source of truth for "this write has not been
// confirmed remotely", so every put forces the flag to false and only
// the explicit mark-synced operations may set it true.
package cache

import (
	"errors"
	"fmt"

	"neuralife-notes/neuralife/database"
	"neuralife-notes/neuralife/models"

	"gorm.io/gorm"
)

var (
	// ErrStorage wraps quota, corruption and other local persistence
	// failures. Callers treat the operation as pending-remote-only.
	ErrStorage = errors.New("local storage failure")

	// ErrNotFound signals that no record exists for the given id.
	ErrNotFound = errors.New("record not found")
)

type Store struct {
	db *database.Database
}

func NewStore(db *database.Database) *Store {
	return &Store{db: db}
}

// write runs a mutating operation, retrying once before surfacing the
// failure as a storage error.
func (s *Store) write(op func() error) error {
	if err := op(); err != nil {
		if err = op(); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
	}
	return nil
}

func wrapRead(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

// Clear removes every cached record regardless of owner. A maintenance
// operation for single-owner deployments; logout uses DeleteOwnerData.
func (s *Store) Clear() error {
	return s.write(func() error {
		for _, table := range []string{"notes", "folders", "note_versions"} {
			if err := s.db.DB.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteOwnerData removes everything cached for one owner, including
// the version history of that owner's notes.
func (s *Store) DeleteOwnerData(ownerID string) error {
	return s.write(func() error {
		var noteIDs []string
		if err := s.db.DB.Model(&models.Note{}).Where("owner_id = ?", ownerID).Pluck("id", &noteIDs).Error; err != nil {
			return err
		}
		if len(noteIDs) > 0 {
			if err := s.db.DB.Where("note_id IN ?", noteIDs).Delete(&models.NoteVersion{}).Error; err != nil {
				return err
			}
		}
		if err := s.db.DB.Where("owner_id = ?", ownerID).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		return s.db.DB.Where("owner_id = ?", ownerID).Delete(&models.Folder{}).Error
	})
}
