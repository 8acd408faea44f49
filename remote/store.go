// Package remote defines the boundary to the remote document store and
// provides the NATS-backed production client. The store is external: it
// assigns document ids, stamps server-clock timestamps on confirmed
// writes, and pushes live query snapshots to subscribers.
package remote

// Collections used by the sync core.
const (
	NotesCollection   = "notes"
	FoldersCollection = "folders"
)

// ServerTimestamp is a sentinel field value; the backend replaces it
// with its own clock when the write is applied. Fields not yet confirmed
// remotely carry local wall-clock values instead.
const ServerTimestamp = "__server_timestamp__"

// Document is the wire form of a remote record.
type Document struct {
	ID   string                 `json:"id"`
	Data map[string]interface{} `json:"data"`
}

// SnapshotHandler receives the full result set of a subscribed query
// every time it changes, including once on subscription.
type SnapshotHandler func(docs []Document)

// ErrorHandler receives subscription failures (e.g. permission revoked
// mid-session).
type ErrorHandler func(err error)

// Unsubscribe tears down a live query subscription.
type Unsubscribe func()

// Store is the minimal remote document store surface. A mock
// implementation backs unit tests; the NATS client backs production.
type Store interface {
	// Create stores a new document and returns the server-assigned id.
	Create(collection string, data map[string]interface{}) (string, error)

	// Update applies a partial update to the document keyed by id.
	Update(collection string, id string, data map[string]interface{}) error

	// Delete removes the document keyed by id.
	Delete(collection string, id string) error

	// QueryByField returns all documents whose field equals value.
	QueryByField(collection string, field string, value interface{}) ([]Document, error)

	// Subscribe establishes a live query. onSnapshot is invoked with the
	// initial result set and again on every change; onError is invoked
	// if the subscription itself fails.
	Subscribe(collection string, field string, value interface{}, onSnapshot SnapshotHandler, onError ErrorHandler) (Unsubscribe, error)
}
