package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoteToJSON(t *testing.T) {
	folderID := "folder-1"
	note := Note{
		ID:        PersistedID("note-1"),
		OwnerID:   "owner-1",
		FolderID:  &folderID,
		Title:     "Test Title",
		Content:   "Test Content",
		Tags:      []string{"tag1", "tag2"},
		Synced:    true,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}

	data, err := note.ToJSON()
	assert.NoError(t, err)

	var result Note
	err = json.Unmarshal(data, &result)
	assert.NoError(t, err)
	assert.Equal(t, note, result)
}

func TestNoteFromJSON(t *testing.T) {
	data := `{
		"id": "temp-550e8400-e29b-41d4-a716-446655440000",
		"owner_id": "owner-1",
		"title": "Test Title",
		"content": "Test Content",
		"tags": ["tag1", "tag2"],
		"synced": false
	}`

	var note Note
	err := note.FromJSON([]byte(data))
	assert.NoError(t, err)
	assert.True(t, note.ID.Pending())
	assert.Equal(t, "Test Title", note.Title)
	assert.Equal(t, []string{"tag1", "tag2"}, note.Tags)
	assert.Nil(t, note.FolderID)
	assert.False(t, note.Synced)
}

func TestFolderFromJSON(t *testing.T) {
	data := `{
		"id": "folder-1",
		"owner_id": "owner-1",
		"name": "Projects",
		"parent_id": null,
		"synced": true
	}`

	var folder Folder
	err := folder.FromJSON([]byte(data))
	assert.NoError(t, err)
	assert.False(t, folder.ID.Pending())
	assert.Equal(t, "Projects", folder.Name)
	assert.Nil(t, folder.ParentID)
}
