package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"neuralife-notes/neuralife/models"
)

func TestAppendVersionAssignsIDs(t *testing.T) {
	store := setupStore(t)

	v := models.NoteVersion{
		NoteID:    "note-1",
		Title:     "Draft",
		Content:   "First pass",
		CreatedAt: time.Now().UTC(),
	}
	assert.NoError(t, store.AppendVersion(v))
	assert.NoError(t, store.AppendVersion(v))

	versions, err := store.GetVersionsForNote("note-1")
	assert.NoError(t, err)
	assert.Len(t, versions, 2)
	assert.NotEqual(t, versions[0].ID, versions[1].ID)
}

func TestGetVersionsForNoteOrdering(t *testing.T) {
	store := setupStore(t)

	older := models.NoteVersion{NoteID: "note-1", Title: "v1", CreatedAt: time.Now().UTC().Add(-time.Hour)}
	newer := models.NoteVersion{NoteID: "note-1", Title: "v2", CreatedAt: time.Now().UTC()}
	other := models.NoteVersion{NoteID: "note-2", Title: "x", CreatedAt: time.Now().UTC()}

	assert.NoError(t, store.AppendVersion(older))
	assert.NoError(t, store.AppendVersion(newer))
	assert.NoError(t, store.AppendVersion(other))

	versions, err := store.GetVersionsForNote("note-1")
	assert.NoError(t, err)
	assert.Len(t, versions, 2)
	assert.Equal(t, "v2", versions[0].Title, "latest snapshot comes first")
}

func TestDeleteVersionsForNote(t *testing.T) {
	store := setupStore(t)

	keep := models.NoteVersion{NoteID: "note-2", Title: "keep", CreatedAt: time.Now().UTC()}
	assert.NoError(t, store.AppendVersion(models.NoteVersion{NoteID: "note-1", Title: "gone", CreatedAt: time.Now().UTC()}))
	assert.NoError(t, store.AppendVersion(keep))

	assert.NoError(t, store.DeleteVersionsForNote("note-1"))

	versions, err := store.GetVersionsForNote("note-1")
	assert.NoError(t, err)
	assert.Empty(t, versions)

	kept, err := store.GetVersionsForNote("note-2")
	assert.NoError(t, err)
	assert.Len(t, kept, 1)
}
