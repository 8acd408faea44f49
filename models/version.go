package models

import (
	"encoding/json"
	"time"
)

// NoteVersion is an append-only snapshot of a note taken immediately
// before an edit. Versions are never updated and never deleted as a side
// effect of editing; removal happens only through the explicit
// delete-versions operation.
type NoteVersion struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	NoteID    string    `gorm:"index;not null" json:"note_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `gorm:"index;autoCreateTime:false" json:"created_at"`
}

func (v *NoteVersion) FromJSON(data []byte) error {
	return json.Unmarshal(data, v)
}

func (v *NoteVersion) ToJSON() ([]byte, error) {
	return json.Marshal(v)
}
