package services

import (
	"time"

	"neuralife-notes/neuralife/models"
	"neuralife-notes/neuralife/remote"
)

// noteToDoc builds the remote wire form of a note. Confirmed writes get
// server-clock timestamps via the sentinel; a create also stamps
// created_at, an update preserves it.
func noteToDoc(note models.Note, isCreate bool) map[string]interface{} {
	doc := map[string]interface{}{
		"owner_id":   note.OwnerID,
		"title":      note.Title,
		"content":    note.Content,
		"tags":       note.Tags,
		"updated_at": remote.ServerTimestamp,
	}
	if note.FolderID != nil {
		doc["folder_id"] = *note.FolderID
	} else {
		doc["folder_id"] = nil
	}
	if isCreate {
		doc["created_at"] = remote.ServerTimestamp
	} else {
		doc["created_at"] = note.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return doc
}

func folderToDoc(folder models.Folder) map[string]interface{} {
	doc := map[string]interface{}{
		"owner_id":   folder.OwnerID,
		"name":       folder.Name,
		"created_at": remote.ServerTimestamp,
	}
	if folder.ParentID != nil {
		doc["parent_id"] = *folder.ParentID
	} else {
		doc["parent_id"] = nil
	}
	return doc
}

func docToNote(doc remote.Document) models.Note {
	note := models.Note{
		ID:      models.PersistedID(doc.ID),
		Tags:    []string{},
		OwnerID: stringField(doc.Data, "owner_id"),
		Title:   stringField(doc.Data, "title"),
		Content: stringField(doc.Data, "content"),
	}
	if folderID := stringField(doc.Data, "folder_id"); folderID != "" {
		note.FolderID = &folderID
	}
	if tags, ok := doc.Data["tags"].([]interface{}); ok {
		for _, tag := range tags {
			if t, ok := tag.(string); ok {
				note.Tags = append(note.Tags, t)
			}
		}
	}
	note.CreatedAt = timeField(doc.Data, "created_at")
	note.UpdatedAt = timeField(doc.Data, "updated_at")
	return note
}

func docToFolder(doc remote.Document) models.Folder {
	folder := models.Folder{
		ID:      models.PersistedID(doc.ID),
		OwnerID: stringField(doc.Data, "owner_id"),
		Name:    stringField(doc.Data, "name"),
	}
	if parentID := stringField(doc.Data, "parent_id"); parentID != "" {
		folder.ParentID = &parentID
	}
	folder.CreatedAt = timeField(doc.Data, "created_at")
	return folder
}

func stringField(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

// timeField tolerates both RFC3339 strings and missing values; a field
// the server never stamped falls back to the local clock, mirroring the
// unconfirmed-write convention.
func timeField(data map[string]interface{}, key string) time.Time {
	if v, ok := data[key].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Now()
}
