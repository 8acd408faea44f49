package database

import (
	"log"

	"neuralife-notes/neuralife/models"

	"gorm.io/gorm"
)

// RunMigrations runs database migrations to ensure tables are up to date
func RunMigrations(db *gorm.DB) error {
	log.Println("Running local cache migrations...")

	err := db.AutoMigrate(
		&models.Note{},
		&models.Folder{},
		&models.NoteVersion{},
	)

	if err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	return nil
}
