package testutils

import (
	"fmt"
	"sync"
	"time"

	"neuralife-notes/neuralife/remote"

	"github.com/google/uuid"
)

type subscription struct {
	id         int
	collection string
	field      string
	value      interface{}
	onSnapshot remote.SnapshotHandler
	onError    remote.ErrorHandler
}

// FakeRemoteStore is an in-memory remote document store with live query
// pushes. Failure hooks let tests inject per-record remote errors.
type FakeRemoteStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]interface{}
	subs        map[int]*subscription
	nextSubID   int

	// CreateHook/UpdateHook/DeleteHook run before the operation; a
	// non-nil return aborts it with that error.
	CreateHook func(collection string, data map[string]interface{}) error
	UpdateHook func(collection string, id string, data map[string]interface{}) error
	DeleteHook func(collection string, id string) error
}

func NewFakeRemoteStore() *FakeRemoteStore {
	return &FakeRemoteStore{
		collections: make(map[string]map[string]map[string]interface{}),
		subs:        make(map[int]*subscription),
	}
}

func (f *FakeRemoteStore) docs(collection string) map[string]map[string]interface{} {
	if f.collections[collection] == nil {
		f.collections[collection] = make(map[string]map[string]interface{})
	}
	return f.collections[collection]
}

// resolveTimestamps replaces the server-clock sentinel the way the real
// backend would on a confirmed write.
func resolveTimestamps(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		if v == remote.ServerTimestamp {
			out[k] = time.Now().UTC().Format(time.RFC3339Nano)
		} else {
			out[k] = v
		}
	}
	return out
}

func (f *FakeRemoteStore) Create(collection string, data map[string]interface{}) (string, error) {
	if f.CreateHook != nil {
		if err := f.CreateHook(collection, data); err != nil {
			return "", err
		}
	}

	f.mu.Lock()
	id := "srv-" + uuid.New().String()
	f.docs(collection)[id] = resolveTimestamps(data)
	f.mu.Unlock()

	f.pushSnapshots(collection)
	return id, nil
}

func (f *FakeRemoteStore) Update(collection string, id string, data map[string]interface{}) error {
	if f.UpdateHook != nil {
		if err := f.UpdateHook(collection, id, data); err != nil {
			return err
		}
	}

	f.mu.Lock()
	doc, ok := f.docs(collection)[id]
	if !ok {
		f.mu.Unlock()
		return fmt.Errorf("document %s/%s not found", collection, id)
	}
	for k, v := range resolveTimestamps(data) {
		doc[k] = v
	}
	f.mu.Unlock()

	f.pushSnapshots(collection)
	return nil
}

func (f *FakeRemoteStore) Delete(collection string, id string) error {
	if f.DeleteHook != nil {
		if err := f.DeleteHook(collection, id); err != nil {
			return err
		}
	}

	f.mu.Lock()
	delete(f.docs(collection), id)
	f.mu.Unlock()

	f.pushSnapshots(collection)
	return nil
}

func (f *FakeRemoteStore) QueryByField(collection string, field string, value interface{}) ([]remote.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queryLocked(collection, field, value), nil
}

func (f *FakeRemoteStore) queryLocked(collection string, field string, value interface{}) []remote.Document {
	var out []remote.Document
	for id, data := range f.docs(collection) {
		if data[field] == value {
			copied := make(map[string]interface{}, len(data))
			for k, v := range data {
				copied[k] = v
			}
			out = append(out, remote.Document{ID: id, Data: copied})
		}
	}
	return out
}

func (f *FakeRemoteStore) Subscribe(collection string, field string, value interface{}, onSnapshot remote.SnapshotHandler, onError remote.ErrorHandler) (remote.Unsubscribe, error) {
	f.mu.Lock()
	id := f.nextSubID
	f.nextSubID++
	sub := &subscription{
		id:         id,
		collection: collection,
		field:      field,
		value:      value,
		onSnapshot: onSnapshot,
		onError:    onError,
	}
	f.subs[id] = sub
	initial := f.queryLocked(collection, field, value)
	f.mu.Unlock()

	onSnapshot(initial)

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}, nil
}

// SubscriptionCount reports how many live subscriptions exist.
func (f *FakeRemoteStore) SubscriptionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// FailSubscriptions delivers err to every live subscription's error
// handler, simulating e.g. a mid-session permission revocation.
func (f *FakeRemoteStore) FailSubscriptions(err error) {
	f.mu.Lock()
	handlers := make([]remote.ErrorHandler, 0, len(f.subs))
	for _, sub := range f.subs {
		handlers = append(handlers, sub.onError)
	}
	f.mu.Unlock()

	for _, h := range handlers {
		h(err)
	}
}

// Docs returns a copy of a collection for assertions.
func (f *FakeRemoteStore) Docs(collection string) []remote.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []remote.Document
	for id, data := range f.docs(collection) {
		copied := make(map[string]interface{}, len(data))
		for k, v := range data {
			copied[k] = v
		}
		out = append(out, remote.Document{ID: id, Data: copied})
	}
	return out
}

func (f *FakeRemoteStore) pushSnapshots(collection string) {
	f.mu.Lock()
	type delivery struct {
		handler remote.SnapshotHandler
		docs    []remote.Document
	}
	var deliveries []delivery
	for _, sub := range f.subs {
		if sub.collection != collection {
			continue
		}
		deliveries = append(deliveries, delivery{
			handler: sub.onSnapshot,
			docs:    f.queryLocked(collection, sub.field, sub.value),
		})
	}
	f.mu.Unlock()

	for _, d := range deliveries {
		d.handler(d.docs)
	}
}
