package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPendingID(t *testing.T) {
	id := NewPendingID()
	assert.True(t, id.Pending())
	assert.True(t, strings.HasPrefix(id.String(), PendingIDPrefix))
	assert.False(t, id.IsZero())
}

func TestPersistedID(t *testing.T) {
	id := PersistedID("abc123")
	assert.False(t, id.Pending())
	assert.Equal(t, "abc123", id.String())
}

func TestParseDocID(t *testing.T) {
	pending := ParseDocID("temp-550e8400-e29b-41d4-a716-446655440000")
	assert.True(t, pending.Pending())

	persisted := ParseDocID("srv-assigned-id")
	assert.False(t, persisted.Pending())
}

func TestDocIDScanRoundTrip(t *testing.T) {
	orig := NewPendingID()

	value, err := orig.Value()
	assert.NoError(t, err)

	var scanned DocID
	err = scanned.Scan(value)
	assert.NoError(t, err)
	assert.Equal(t, orig, scanned)
	assert.True(t, scanned.Pending())
}

func TestDocIDJSON(t *testing.T) {
	id := PersistedID("doc-1")
	data, err := json.Marshal(id)
	assert.NoError(t, err)
	assert.Equal(t, `"doc-1"`, string(data))

	var decoded DocID
	err = json.Unmarshal([]byte(`"temp-xyz"`), &decoded)
	assert.NoError(t, err)
	assert.True(t, decoded.Pending())

	err = json.Unmarshal([]byte(`""`), &decoded)
	assert.Error(t, err)
}
