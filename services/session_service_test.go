package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"neuralife-notes/neuralife/cache"
	"neuralife-notes/neuralife/testutils"
)

func setupSessionService(t *testing.T) (*SessionService, *testutils.FakeRemoteStore, *cache.Store) {
	db, cleanup := testutils.SetupCacheDB()
	t.Cleanup(cleanup)

	store := cache.NewStore(db)
	remoteStore := testutils.NewFakeRemoteStore()
	service := NewSessionService(store, remoteStore,
		NewConnectivityService(true), testutils.NewRecordingNotifier())
	t.Cleanup(service.EndAll)
	return service, remoteStore, store
}

func TestGetSessionReturnsSameInstance(t *testing.T) {
	service, remoteStore, _ := setupSessionService(t)

	first, err := service.GetSession("user-1")
	assert.NoError(t, err)
	second, err := service.GetSession("user-1")
	assert.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, remoteStore.SubscriptionCount())
}

func TestSessionsAreOwnerScoped(t *testing.T) {
	service, remoteStore, _ := setupSessionService(t)

	alice, err := service.GetSession("alice")
	assert.NoError(t, err)
	bob, err := service.GetSession("bob")
	assert.NoError(t, err)

	assert.Equal(t, "alice", alice.OwnerID())
	assert.Equal(t, "bob", bob.OwnerID())
	assert.Equal(t, 2, remoteStore.SubscriptionCount())
}

func TestEndSessionTearsDown(t *testing.T) {
	service, remoteStore, _ := setupSessionService(t)

	_, err := service.GetSession("user-1")
	assert.NoError(t, err)

	assert.NoError(t, service.EndSession("user-1"))
	assert.Equal(t, 0, remoteStore.SubscriptionCount())

	err = service.EndSession("user-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPurgeSessionDropsOwnerData(t *testing.T) {
	service, remoteStore, store := setupSessionService(t)

	session, err := service.GetSession("user-1")
	assert.NoError(t, err)
	note, err := session.SaveNote(map[string]interface{}{"title": "gone at logout"})
	assert.NoError(t, err)
	assert.NoError(t, session.SaveVersion(note.ID.String(), "v1", "snapshot"))

	other, err := service.GetSession("user-2")
	assert.NoError(t, err)
	_, err = other.SaveNote(map[string]interface{}{"title": "survives"})
	assert.NoError(t, err)

	assert.NoError(t, service.PurgeSession("user-1"))
	assert.Equal(t, 1, remoteStore.SubscriptionCount())

	notes, err := store.GetNotesByOwner("user-1")
	assert.NoError(t, err)
	assert.Empty(t, notes)

	versions, err := store.GetVersionsForNote(note.ID.String())
	assert.NoError(t, err)
	assert.Empty(t, versions)

	kept, err := store.GetNotesByOwner("user-2")
	assert.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestEndAllStopsEverySession(t *testing.T) {
	service, remoteStore, _ := setupSessionService(t)

	_, err := service.GetSession("alice")
	assert.NoError(t, err)
	_, err = service.GetSession("bob")
	assert.NoError(t, err)

	service.EndAll()
	assert.Equal(t, 0, remoteStore.SubscriptionCount())
}
