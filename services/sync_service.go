package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"neuralife-notes/neuralife/cache"
	"neuralife-notes/neuralife/models"
	"neuralife-notes/neuralife/remote"
)

// SyncServiceInterface is the contractual surface the presentation
// layer consumes. One instance exists per active owner session.
type SyncServiceInterface interface {
	Start() error
	Stop()

	SaveNote(noteData map[string]interface{}) (models.Note, error)
	GetNote(id string) (models.Note, error)
	DeleteNote(id string) error
	CreateFolder(folderData map[string]interface{}) (models.Folder, error)
	DeleteFolder(id string) error
	SaveVersion(noteID, title, content string) error
	GetVersionHistory(noteID string) ([]models.NoteVersion, error)
	DeleteVersionHistory(noteID string) error

	SyncOfflineRecords() (int, error)

	Notes() []models.Note
	Folders() []models.Folder
	Loading() bool
	IsOnline() bool
	OwnerID() string
}

// SyncService makes every mutation durable in the local cache first and
// mirrors it to the remote store when connectivity allows. Records left
// behind by remote failures or offline periods stay flagged unsynced
// and are replayed by the backlog flush on the next offline-to-online
// transition.
//
// Concurrent edits of the same note from two sessions resolve by
// last-write-wins at the remote layer. There is no merge and no
// optimistic-lock check; this is a known weakness carried over from the
// system's design, not something the coordinator defends against.
type SyncService struct {
	ownerID      string
	store        *cache.Store
	remote       remote.Store
	connectivity ConnectivityServiceInterface
	notifier     NotificationServiceInterface

	mu      sync.RWMutex
	notes   []models.Note
	folders []models.Folder
	loading bool

	// subMutex guards the subscription and listener handles, which are
	// touched both by HTTP handlers and by connectivity callbacks.
	subMutex       sync.Mutex
	unsubscribe    remote.Unsubscribe
	removeListener func()

	// flushMutex serializes backlog flushes so a manual flush racing a
	// reconnect-edge flush cannot replay the same record twice.
	flushMutex sync.Mutex
}

func NewSyncService(ownerID string, store *cache.Store, remoteStore remote.Store, connectivity ConnectivityServiceInterface, notifier NotificationServiceInterface) *SyncService {
	return &SyncService{
		ownerID:      ownerID,
		store:        store,
		remote:       remoteStore,
		connectivity: connectivity,
		notifier:     notifier,
	}
}

// Start loads the cached view, establishes the remote subscription when
// online and registers for connectivity edges. Starting an already
// started session re-subscribes; the previous subscription is torn down
// first so at most one is ever outstanding per owner.
func (s *SyncService) Start() error {
	s.teardownSubscription()

	// One-shot load from the cache, the offline mount view.
	if err := s.reloadFromCache(); err != nil {
		return err
	}

	if s.connectivity.IsOnline() {
		s.subscribeRemote()
		s.refreshFoldersFromRemote()
	}

	s.subMutex.Lock()
	if s.removeListener == nil {
		s.removeListener = s.connectivity.AddListener(s.onConnectivityChange)
	}
	s.subMutex.Unlock()
	return nil
}

// Stop tears down the subscription and connectivity listener. It must
// run before a session for a different owner starts so stale snapshots
// cannot leak into the new owner's view.
func (s *SyncService) Stop() {
	s.teardownSubscription()

	s.subMutex.Lock()
	removeListener := s.removeListener
	s.removeListener = nil
	s.subMutex.Unlock()
	if removeListener != nil {
		removeListener()
	}
}

func (s *SyncService) OwnerID() string { return s.ownerID }

func (s *SyncService) IsOnline() bool { return s.connectivity.IsOnline() }

func (s *SyncService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Notes returns a copy of the in-memory view, newest update first.
func (s *SyncService) Notes() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

func (s *SyncService) Folders() []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Folder, len(s.folders))
	copy(out, s.folders)
	return out
}

// SaveNote writes the note durably to the local cache and, when online,
// mirrors it to the remote store. A remote failure is never returned to
// the caller: the record simply stays unsynced for the next flush. The
// returned error is non-nil only for invalid input, a supplied id that
// does not belong to this owner, or local storage failures.
func (s *SyncService) SaveNote(noteData map[string]interface{}) (models.Note, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	note, err := s.noteFromInput(noteData)
	if err != nil {
		return models.Note{}, err
	}

	if err := s.store.PutNote(note); err != nil {
		return models.Note{}, fmt.Errorf("%w: %v", ErrLocalStorage, err)
	}

	if s.connectivity.IsOnline() {
		note = s.mirrorNote(note)
	}

	if err := s.reloadFromCache(); err != nil {
		log.Printf("Failed to reload cached view: %v", err)
	}
	s.notify(NotifyStateChanged, "note saved")
	return note, nil
}

// noteFromInput builds the effective note record. A caller-supplied id
// is reused (including a still-pending temp id from an earlier offline
// save); otherwise a fresh pending id is minted.
func (s *SyncService) noteFromInput(noteData map[string]interface{}) (models.Note, error) {
	now := time.Now()

	note := models.Note{
		ID:        models.NewPendingID(),
		OwnerID:   s.ownerID,
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      []string{},
	}

	if id, ok := noteData["id"].(string); ok && id != "" {
		note.ID = models.ParseDocID(id)
		existing, err := s.store.GetNoteByID(id)
		if err == nil {
			if existing.OwnerID != s.ownerID {
				return models.Note{}, ErrNoteNotFound
			}
			note.CreatedAt = existing.CreatedAt
		} else if !errors.Is(err, cache.ErrNotFound) {
			return models.Note{}, fmt.Errorf("%w: %v", ErrLocalStorage, err)
		}
	}

	title, ok := noteData["title"].(string)
	if !ok || title == "" {
		return models.Note{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	note.Title = title

	if content, ok := noteData["content"].(string); ok {
		note.Content = content
	}

	if folderID, ok := noteData["folder_id"].(string); ok && folderID != "" {
		note.FolderID = &folderID
	}

	if tags, ok := noteData["tags"].([]interface{}); ok {
		for _, tag := range tags {
			if t, ok := tag.(string); ok {
				note.Tags = append(note.Tags, t)
			}
		}
	}

	return note, nil
}

// mirrorNote attempts the remote write for a note already durable in
// the cache. On the first-ever sync of a pending record the remote
// create re-keys the cache entry under the server-assigned id.
func (s *SyncService) mirrorNote(note models.Note) models.Note {
	if note.ID.Pending() {
		remoteID, err := s.remote.Create(remote.NotesCollection, noteToDoc(note, true))
		if err != nil {
			log.Printf("Remote create failed for note %s: %v", note.ID, err)
			return note
		}

		tempID := note.ID.String()
		note.ID = models.PersistedID(remoteID)
		if err := s.store.DeleteNote(tempID); err != nil {
			log.Printf("Failed to drop temp note %s: %v", tempID, err)
		}
		if err := s.store.PutNote(note); err != nil {
			log.Printf("Failed to re-key note %s: %v", remoteID, err)
			return note
		}
		if err := s.store.MarkNoteSynced(remoteID); err != nil {
			log.Printf("Failed to mark note %s synced: %v", remoteID, err)
			return note
		}
		note.Synced = true
		return note
	}

	if err := s.remote.Update(remote.NotesCollection, note.ID.String(), noteToDoc(note, false)); err != nil {
		log.Printf("Remote update failed for note %s: %v", note.ID, err)
		return note
	}
	if err := s.store.MarkNoteSynced(note.ID.String()); err != nil {
		log.Printf("Failed to mark note %s synced: %v", note.ID, err)
		return note
	}
	note.Synced = true
	return note
}

// GetNote serves a single note from the local cache, which the write
// path keeps current whether online or offline.
func (s *SyncService) GetNote(id string) (models.Note, error) {
	note, err := s.store.GetNoteByID(id)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, fmt.Errorf("%w: %v", ErrLocalStorage, err)
	}
	if note.OwnerID != s.ownerID {
		return models.Note{}, ErrNoteNotFound
	}
	return note, nil
}

// DeleteNote removes the owner's note from the cache and, when online
// and the id is server-assigned, from the remote store. A pending id
// has never existed remotely, so the local delete is all there is.
// Deletion is scoped like GetNote: another owner's record reads as
// absent.
func (s *SyncService) DeleteNote(id string) error {
	note, err := s.store.GetNoteByID(id)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("%w: %v", ErrLocalStorage, err)
	}
	if note.OwnerID != s.ownerID {
		return ErrNoteNotFound
	}

	if err := s.store.DeleteNote(id); err != nil {
		return fmt.Errorf("%w: %v", ErrLocalStorage, err)
	}

	if s.connectivity.IsOnline() && !note.ID.Pending() {
		if err := s.remote.Delete(remote.NotesCollection, id); err != nil {
			return fmt.Errorf("%w: %v", ErrRemoteWrite, err)
		}
	}

	if err := s.reloadFromCache(); err != nil {
		log.Printf("Failed to reload cached view: %v", err)
	}
	s.notify(NotifyStateChanged, "note deleted")
	return nil
}

// CreateFolder mirrors the note write path for folders.
func (s *SyncService) CreateFolder(folderData map[string]interface{}) (models.Folder, error) {
	name, ok := folderData["name"].(string)
	if !ok || name == "" {
		return models.Folder{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	folder := models.Folder{
		ID:        models.NewPendingID(),
		OwnerID:   s.ownerID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if parentID, ok := folderData["parent_id"].(string); ok && parentID != "" {
		folder.ParentID = &parentID
	}

	if err := s.store.PutFolder(folder); err != nil {
		return models.Folder{}, fmt.Errorf("%w: %v", ErrLocalStorage, err)
	}

	if s.connectivity.IsOnline() {
		folder = s.mirrorFolder(folder)
	}

	if err := s.reloadFromCache(); err != nil {
		log.Printf("Failed to reload cached view: %v", err)
	}
	s.notify(NotifyStateChanged, "folder created")
	return folder, nil
}

func (s *SyncService) mirrorFolder(folder models.Folder) models.Folder {
	if folder.ID.Pending() {
		remoteID, err := s.remote.Create(remote.FoldersCollection, folderToDoc(folder))
		if err != nil {
			log.Printf("Remote create failed for folder %s: %v", folder.ID, err)
			return folder
		}

		tempID := folder.ID.String()
		folder.ID = models.PersistedID(remoteID)
		if err := s.store.DeleteFolder(tempID); err != nil {
			log.Printf("Failed to drop temp folder %s: %v", tempID, err)
		}
		if err := s.store.PutFolder(folder); err != nil {
			log.Printf("Failed to re-key folder %s: %v", remoteID, err)
			return folder
		}
		if err := s.store.MarkFolderSynced(remoteID); err != nil {
			log.Printf("Failed to mark folder %s synced: %v", remoteID, err)
			return folder
		}
		folder.Synced = true
		return folder
	}

	if err := s.remote.Update(remote.FoldersCollection, folder.ID.String(), folderToDoc(folder)); err != nil {
		log.Printf("Remote update failed for folder %s: %v", folder.ID, err)
		return folder
	}
	if err := s.store.MarkFolderSynced(folder.ID.String()); err != nil {
		log.Printf("Failed to mark folder %s synced: %v", folder.ID, err)
		return folder
	}
	folder.Synced = true
	return folder
}

// DeleteFolder removes the owner's folder only. Notes referencing it
// keep their now-dangling folder id and are treated as unfiled by the
// caller. Another owner's folder reads as absent.
func (s *SyncService) DeleteFolder(id string) error {
	folder, err := s.store.GetFolderByID(id)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return ErrFolderNotFound
		}
		return fmt.Errorf("%w: %v", ErrLocalStorage, err)
	}
	if folder.OwnerID != s.ownerID {
		return ErrFolderNotFound
	}

	if err := s.store.DeleteFolder(id); err != nil {
		return fmt.Errorf("%w: %v", ErrLocalStorage, err)
	}

	if s.connectivity.IsOnline() && !folder.ID.Pending() {
		if err := s.remote.Delete(remote.FoldersCollection, id); err != nil {
			return fmt.Errorf("%w: %v", ErrRemoteWrite, err)
		}
	}

	if err := s.reloadFromCache(); err != nil {
		log.Printf("Failed to reload cached view: %v", err)
	}
	s.notify(NotifyStateChanged, "folder deleted")
	return nil
}

// SaveVersion appends a snapshot of the note's pre-edit state. Version
// history lives only in the local cache.
func (s *SyncService) SaveVersion(noteID, title, content string) error {
	version := models.NoteVersion{
		NoteID:    noteID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.store.AppendVersion(version); err != nil {
		return fmt.Errorf("%w: %v", ErrLocalStorage, err)
	}
	return nil
}

func (s *SyncService) GetVersionHistory(noteID string) ([]models.NoteVersion, error) {
	versions, err := s.store.GetVersionsForNote(noteID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLocalStorage, err)
	}
	return versions, nil
}

func (s *SyncService) DeleteVersionHistory(noteID string) error {
	if err := s.store.DeleteVersionsForNote(noteID); err != nil {
		return fmt.Errorf("%w: %v", ErrLocalStorage, err)
	}
	return nil
}

// SyncOfflineRecords replays the unsynced backlog against the remote
// store. Folders go first so notes never reference a folder the remote
// has not seen. Each record is replayed independently: one failure does
// not abort the rest. Flushes are serialized; a manual flush overlapping
// the reconnect flush waits and then finds an empty backlog. Returns the
// number of records replayed.
func (s *SyncService) SyncOfflineRecords() (int, error) {
	s.flushMutex.Lock()
	defer s.flushMutex.Unlock()

	synced := 0
	failed := 0

	folders, err := s.store.GetUnsyncedFolders()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLocalStorage, err)
	}
	for _, folder := range folders {
		if s.mirrorFolder(folder).Synced {
			synced++
		} else {
			failed++
		}
	}

	notes, err := s.store.GetUnsyncedNotes()
	if err != nil {
		return synced, fmt.Errorf("%w: %v", ErrLocalStorage, err)
	}
	for _, note := range notes {
		if s.mirrorNote(note).Synced {
			synced++
		} else {
			failed++
		}
	}

	if failed > 0 {
		log.Printf("Backlog flush: %d records failed and stay queued", failed)
	}
	if synced > 0 {
		s.notify(NotifySyncCompleted, fmt.Sprintf("Synced %d records", synced))
	}

	if err := s.reloadFromCache(); err != nil {
		log.Printf("Failed to reload cached view: %v", err)
	}
	return synced, nil
}

// onConnectivityChange reacts to an edge from the connectivity monitor.
func (s *SyncService) onConnectivityChange(online bool) {
	if !online {
		s.notify(NotifyOffline, "You're offline - changes will be saved locally")
		return
	}

	s.notify(NotifyOnline, "Back online - syncing notes...")
	if _, err := s.SyncOfflineRecords(); err != nil {
		log.Printf("Backlog flush failed: %v", err)
		s.notify(NotifySyncFailed, "Failed to sync some records")
	}

	s.subscribeRemote()
	s.refreshFoldersFromRemote()
}

// subscribeRemote (re-)establishes the live note query for this owner,
// tearing down any previous subscription first.
func (s *SyncService) subscribeRemote() {
	s.teardownSubscription()

	unsubscribe, err := s.remote.Subscribe(remote.NotesCollection, "owner_id", s.ownerID,
		s.handleNoteSnapshot, s.handleSubscriptionError)
	if err != nil {
		log.Printf("Failed to subscribe to remote notes for %s: %v", s.ownerID, err)
		s.notify(NotifySyncFailed, "Failed to sync notes from server")
		return
	}

	s.subMutex.Lock()
	s.unsubscribe = unsubscribe
	s.subMutex.Unlock()
}

func (s *SyncService) teardownSubscription() {
	s.subMutex.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.subMutex.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

// handleNoteSnapshot treats every emitted snapshot as authoritative: it
// replaces the in-memory view and repopulates the cache entry by entry
// with synced=true.
func (s *SyncService) handleNoteSnapshot(docs []remote.Document) {
	notes := make([]models.Note, 0, len(docs))
	for _, doc := range docs {
		notes = append(notes, docToNote(doc))
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})

	for i := range notes {
		if err := s.store.PutNote(notes[i]); err != nil {
			log.Printf("Failed to cache note %s from snapshot: %v", notes[i].ID, err)
			continue
		}
		if err := s.store.MarkNoteSynced(notes[i].ID.String()); err != nil {
			log.Printf("Failed to mark note %s synced: %v", notes[i].ID, err)
			continue
		}
		notes[i].Synced = true
	}

	s.mu.Lock()
	s.notes = notes
	s.mu.Unlock()
	s.notify(NotifyStateChanged, "notes updated")
}

// handleSubscriptionError surfaces the failure once; the in-memory view
// freezes at its last known-good state until a fresh subscription is
// established on the next reconnect or owner change.
func (s *SyncService) handleSubscriptionError(err error) {
	log.Printf("Remote subscription error for %s: %v", s.ownerID, err)
	s.notify(NotifySyncFailed, "Failed to sync notes from server")
}

// refreshFoldersFromRemote does the one-shot folder load the read path
// uses while online, caching each folder as synced.
func (s *SyncService) refreshFoldersFromRemote() {
	docs, err := s.remote.QueryByField(remote.FoldersCollection, "owner_id", s.ownerID)
	if err != nil {
		log.Printf("Failed to load remote folders for %s: %v", s.ownerID, err)
		return
	}

	folders := make([]models.Folder, 0, len(docs))
	for _, doc := range docs {
		folder := docToFolder(doc)
		if err := s.store.PutFolder(folder); err != nil {
			log.Printf("Failed to cache folder %s: %v", folder.ID, err)
		} else if err := s.store.MarkFolderSynced(folder.ID.String()); err != nil {
			log.Printf("Failed to mark folder %s synced: %v", folder.ID, err)
		} else {
			folder.Synced = true
		}
		folders = append(folders, folder)
	}

	s.mu.Lock()
	s.folders = folders
	s.mu.Unlock()
}

func (s *SyncService) reloadFromCache() error {
	notes, err := s.store.GetNotesByOwner(s.ownerID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLocalStorage, err)
	}
	folders, err := s.store.GetFoldersByOwner(s.ownerID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLocalStorage, err)
	}

	s.mu.Lock()
	s.notes = notes
	s.folders = folders
	s.mu.Unlock()
	return nil
}

func (s *SyncService) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

func (s *SyncService) notify(eventType, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishNotification(s.ownerID, eventType, message); err != nil {
		log.Printf("Failed to publish notification: %v", err)
	}
}
