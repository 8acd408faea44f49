package database

import (
	"testing"

	"neuralife-notes/neuralife/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestClose(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	database := &Database{DB: db}

	assert.NotPanics(t, func() {
		database.Close()
	})
}

func TestRunMigrations(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = RunMigrations(db)
	assert.NoError(t, err)

	for _, table := range []string{"notes", "folders", "note_versions"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}

	// Migrations must be safe to run twice.
	assert.NoError(t, RunMigrations(db))
}

func TestQuery(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	database := &Database{DB: db}
	assert.NoError(t, RunMigrations(db))

	version := models.NoteVersion{NoteID: "note-1", Title: "t", Content: "c"}
	assert.NoError(t, db.Create(&version).Error)

	result, err := database.Query("SELECT * FROM note_versions WHERE note_id = ?", "note-1")
	assert.NoError(t, err)

	var rows []map[string]interface{}
	err = result.Scan(&rows).Error
	assert.NoError(t, err)

	assert.Len(t, rows, 1)
	assert.Equal(t, "t", rows[0]["title"])
}

func TestExecute(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	database := &Database{DB: db}
	assert.NoError(t, RunMigrations(db))

	err = database.Execute("INSERT INTO note_versions (note_id, title, content, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)", "note-1", "t", "c")
	assert.NoError(t, err)

	var count int64
	err = db.Table("note_versions").Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
