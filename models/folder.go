package models

import (
	"encoding/json"
	"time"
)

// Folder groups notes into a tree via ParentID. Deleting a folder never
// cascades to the notes referencing it; their FolderID is left dangling
// and the presentation layer treats it as "no folder".
type Folder struct {
	ID        DocID     `gorm:"type:text;primaryKey" json:"id"`
	OwnerID   string    `gorm:"index;not null" json:"owner_id"`
	ParentID  *string   `gorm:"index" json:"parent_id"`
	Name      string    `gorm:"not null" json:"name"`
	Synced    bool      `gorm:"index;default:false" json:"synced"`
	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"created_at"`
}

func (f *Folder) FromJSON(data []byte) error {
	return json.Unmarshal(data, f)
}

func (f *Folder) ToJSON() ([]byte, error) {
	return json.Marshal(f)
}
