package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PendingIDPrefix marks ids minted locally before the remote store has
// confirmed the record. It only appears in stored/serialized form; code
// should branch on DocID.Pending instead of sniffing the prefix.
const PendingIDPrefix = "temp-"

// DocID identifies a note or folder. An id is either pending (minted
// locally while the record has never been persisted remotely) or
// persisted (assigned by the remote store). Promotion from pending to
// persisted re-keys the cached record.
type DocID struct {
	value   string
	pending bool
}

// NewPendingID mints a fresh local id for a record that has not been
// created remotely yet.
func NewPendingID() DocID {
	return DocID{value: PendingIDPrefix + uuid.New().String(), pending: true}
}

// PersistedID wraps a server-assigned document id.
func PersistedID(id string) DocID {
	return DocID{value: id}
}

// ParseDocID restores a DocID from its stored string form.
func ParseDocID(s string) DocID {
	return DocID{value: s, pending: strings.HasPrefix(s, PendingIDPrefix)}
}

func (id DocID) Pending() bool  { return id.pending }
func (id DocID) IsZero() bool   { return id.value == "" }
func (id DocID) String() string { return id.value }

// Value implements driver.Valuer so the id is stored as a plain string.
func (id DocID) Value() (driver.Value, error) {
	return id.value, nil
}

// Scan implements sql.Scanner.
func (id *DocID) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*id = ParseDocID(v)
	case []byte:
		*id = ParseDocID(string(v))
	case nil:
		*id = DocID{}
	default:
		return fmt.Errorf("cannot scan %T into DocID", src)
	}
	return nil
}

// GormDataType tells gorm to map DocID to a text column.
func (DocID) GormDataType() string {
	return "text"
}

func (id DocID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

func (id *DocID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		return errors.New("document id must not be empty")
	}
	*id = ParseDocID(s)
	return nil
}
