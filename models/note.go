package models

import (
	"encoding/json"
	"time"
)

type Note struct {
	ID        DocID     `gorm:"type:text;primaryKey" json:"id"`
	OwnerID   string    `gorm:"index;not null" json:"owner_id"`
	FolderID  *string   `gorm:"index" json:"folder_id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `gorm:"serializer:json" json:"tags"`
	Synced    bool      `gorm:"index;default:false" json:"synced"`
	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"index;autoUpdateTime:false" json:"updated_at"`
}

func (n *Note) FromJSON(data []byte) error {
	return json.Unmarshal(data, n)
}

func (n *Note) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}
