package services

import (
	"log"
	"sync"

	"github.com/nats-io/nats.go"
)

// ConnectivityServiceInterface tracks online/offline transitions and
// drives backlog flushes and user-facing status.
type ConnectivityServiceInterface interface {
	IsOnline() bool
	AddListener(listener func(online bool)) (remove func())
	SetOnline(online bool)
}

// ConnectivityService is a two-state machine (online/offline). The
// initial state comes from the platform's current connectivity signal;
// transitions are driven solely by external events. Listeners fire on
// edges only, so a flush triggered from the offline-to-online edge runs
// exactly once per transition.
type ConnectivityService struct {
	mu        sync.Mutex
	online    bool
	nextID    int
	listeners map[int]func(online bool)
}

func NewConnectivityService(initialOnline bool) *ConnectivityService {
	return &ConnectivityService{
		online:    initialOnline,
		listeners: make(map[int]func(bool)),
	}
}

func (s *ConnectivityService) IsOnline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

// AddListener registers an edge listener and returns its removal
// function. Listeners are invoked synchronously on the event goroutine.
func (s *ConnectivityService) AddListener(listener func(online bool)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// SetOnline applies a connectivity event. Repeated events in the same
// state are ignored; listeners only see transitions.
func (s *ConnectivityService) SetOnline(online bool) {
	s.mu.Lock()
	if s.online == online {
		s.mu.Unlock()
		return
	}
	s.online = online
	listeners := make([]func(bool), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	if online {
		log.Println("Connectivity restored")
	} else {
		log.Println("Connectivity lost")
	}
	for _, l := range listeners {
		l(online)
	}
}

// Watch binds the state machine to a NATS connection, the platform
// connectivity signal in production.
func (s *ConnectivityService) Watch(conn *nats.Conn) {
	conn.SetDisconnectErrHandler(func(_ *nats.Conn, err error) {
		if err != nil {
			log.Printf("NATS disconnected: %v", err)
		}
		s.SetOnline(false)
	})
	conn.SetReconnectHandler(func(_ *nats.Conn) {
		s.SetOnline(true)
	})
	s.SetOnline(conn.IsConnected())
}

var ConnectivityServiceInstance ConnectivityServiceInterface
