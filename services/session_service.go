package services

import (
	"log"
	"sync"

	"neuralife-notes/neuralife/cache"
	"neuralife-notes/neuralife/remote"
)

type SessionServiceInterface interface {
	GetSession(ownerID string) (SyncServiceInterface, error)
	EndSession(ownerID string) error
	PurgeSession(ownerID string) error
	EndAll()
}

// SessionService owns one SyncService per authenticated owner. A
// session is constructed on first use after login and torn down at
// logout; tearing down before a different owner's session starts keeps
// remote subscriptions strictly owner-scoped.
type SessionService struct {
	store        *cache.Store
	remote       remote.Store
	connectivity ConnectivityServiceInterface
	notifier     NotificationServiceInterface

	mu       sync.Mutex
	sessions map[string]*SyncService
}

func NewSessionService(store *cache.Store, remoteStore remote.Store, connectivity ConnectivityServiceInterface, notifier NotificationServiceInterface) *SessionService {
	return &SessionService{
		store:        store,
		remote:       remoteStore,
		connectivity: connectivity,
		notifier:     notifier,
		sessions:     make(map[string]*SyncService),
	}
}

// GetSession returns the owner's coordinator, starting one if needed.
func (s *SessionService) GetSession(ownerID string) (SyncServiceInterface, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[ownerID]; ok {
		return session, nil
	}

	session := NewSyncService(ownerID, s.store, s.remote, s.connectivity, s.notifier)
	if err := session.Start(); err != nil {
		return nil, err
	}
	s.sessions[ownerID] = session
	log.Printf("Started sync session for owner %s", ownerID)
	return session, nil
}

func (s *SessionService) EndSession(ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[ownerID]
	if !ok {
		return ErrSessionNotFound
	}
	session.Stop()
	delete(s.sessions, ownerID)
	log.Printf("Ended sync session for owner %s", ownerID)
	return nil
}

// PurgeSession ends the owner's session and drops their cached data,
// the full logout path. Unsynced records are lost; callers flush first
// if they care.
func (s *SessionService) PurgeSession(ownerID string) error {
	if err := s.EndSession(ownerID); err != nil {
		return err
	}
	if err := s.store.DeleteOwnerData(ownerID); err != nil {
		log.Printf("Failed to purge cached data for owner %s: %v", ownerID, err)
		return err
	}
	log.Printf("Purged cached data for owner %s", ownerID)
	return nil
}

// EndAll stops every session, used at shutdown.
func (s *SessionService) EndAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ownerID, session := range s.sessions {
		session.Stop()
		delete(s.sessions, ownerID)
	}
}

var SessionServiceInstance SessionServiceInterface
