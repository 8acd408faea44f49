package cache

import (
	"neuralife-notes/neuralife/models"

	"gorm.io/gorm/clause"
)

// PutFolder inserts or overwrites the folder keyed by its id, forcing
// the synced flag to false.
func (s *Store) PutFolder(folder models.Folder) error {
	folder.Synced = false
	return s.write(func() error {
		return s.db.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&folder).Error
	})
}

func (s *Store) GetFoldersByOwner(ownerID string) ([]models.Folder, error) {
	var folders []models.Folder
	err := s.db.DB.Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&folders).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return folders, nil
}

func (s *Store) GetFolderByID(id string) (models.Folder, error) {
	var folder models.Folder
	if err := s.db.DB.First(&folder, "id = ?", id).Error; err != nil {
		return models.Folder{}, wrapRead(err)
	}
	return folder, nil
}

// DeleteFolder removes the folder only. Notes referencing it keep their
// folder id; the dangling reference is the documented behavior.
func (s *Store) DeleteFolder(id string) error {
	return s.write(func() error {
		return s.db.DB.Delete(&models.Folder{}, "id = ?", id).Error
	})
}

func (s *Store) GetUnsyncedFolders() ([]models.Folder, error) {
	var folders []models.Folder
	err := s.db.DB.Where("synced = ?", false).
		Order("created_at ASC").
		Find(&folders).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return folders, nil
}

func (s *Store) MarkFolderSynced(id string) error {
	result := s.db.DB.Model(&models.Folder{}).
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
