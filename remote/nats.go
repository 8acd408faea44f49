package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	subjectPrefix  = "neuralife.store"
	requestTimeout = 5 * time.Second
)

// storeRequest is the request envelope for document store operations.
type storeRequest struct {
	ID    string                 `json:"id,omitempty"`
	Field string                 `json:"field,omitempty"`
	Value interface{}            `json:"value,omitempty"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// storeResponse is the reply envelope. Error is empty on success.
type storeResponse struct {
	ID    string     `json:"id,omitempty"`
	Docs  []Document `json:"docs,omitempty"`
	Error string     `json:"error,omitempty"`
}

// NATSStore talks to the document store backend over NATS: CRUD and
// queries via request/reply, live queries via subject subscriptions.
// The backend publishes the full result set of a watched query to
// <prefix>.<collection>.watch.<field>.<value> whenever it changes.
type NATSStore struct {
	conn    *nats.Conn
	timeout time.Duration
}

func NewNATSStore(conn *nats.Conn) *NATSStore {
	return &NATSStore{conn: conn, timeout: requestTimeout}
}

func (s *NATSStore) request(subject string, req storeRequest) (*storeResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	msg, err := s.conn.Request(subject, payload, s.timeout)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", subject, err)
	}

	var resp storeResponse
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		return nil, fmt.Errorf("decode reply from %s: %w", subject, err)
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return &resp, nil
}

func (s *NATSStore) Create(collection string, data map[string]interface{}) (string, error) {
	resp, err := s.request(subjectPrefix+"."+collection+".create", storeRequest{Data: data})
	if err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", errors.New("remote store returned no document id")
	}
	return resp.ID, nil
}

func (s *NATSStore) Update(collection string, id string, data map[string]interface{}) error {
	_, err := s.request(subjectPrefix+"."+collection+".update", storeRequest{ID: id, Data: data})
	return err
}

func (s *NATSStore) Delete(collection string, id string) error {
	_, err := s.request(subjectPrefix+"."+collection+".delete", storeRequest{ID: id})
	return err
}

func (s *NATSStore) QueryByField(collection string, field string, value interface{}) ([]Document, error) {
	resp, err := s.request(subjectPrefix+"."+collection+".query", storeRequest{Field: field, Value: value})
	if err != nil {
		return nil, err
	}
	return resp.Docs, nil
}

func (s *NATSStore) Subscribe(collection string, field string, value interface{}, onSnapshot SnapshotHandler, onError ErrorHandler) (Unsubscribe, error) {
	subject := fmt.Sprintf("%s.%s.watch.%s.%v", subjectPrefix, collection, field, value)

	sub, err := s.conn.Subscribe(subject, func(msg *nats.Msg) {
		var resp storeResponse
		if err := json.Unmarshal(msg.Data, &resp); err != nil {
			onError(fmt.Errorf("decode snapshot on %s: %w", subject, err))
			return
		}
		if resp.Error != "" {
			onError(errors.New(resp.Error))
			return
		}
		onSnapshot(resp.Docs)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", subject, err)
	}

	// Deliver the current result set; later changes arrive as pushes.
	docs, err := s.QueryByField(collection, field, value)
	if err != nil {
		sub.Unsubscribe()
		return nil, err
	}
	onSnapshot(docs)

	return func() {
		if err := sub.Unsubscribe(); err != nil {
			log.Printf("Failed to unsubscribe from %s: %v", subject, err)
		}
	}, nil
}
