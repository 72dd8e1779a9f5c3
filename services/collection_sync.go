package services

import (
	"context"
	"sort"
	"sync"

	"github.com/HaiderNafees/ElysianThreads/models"
	"github.com/HaiderNafees/ElysianThreads/store"
)

// SyncStatus is the per-(user, collection) state machine position.
type SyncStatus int

const (
	SyncUnauthenticated SyncStatus = iota
	SyncSubscribing
	SyncLive
	SyncError
)

func (s SyncStatus) String() string {
	switch s {
	case SyncSubscribing:
		return "subscribing"
	case SyncLive:
		return "live"
	case SyncError:
		return "error"
	default:
		return "unauthenticated"
	}
}

// MutationState tracks one optimistic edit: pending until the remote write
// resolves, then committed or rolled back.
type MutationState int

const (
	MutationPending MutationState = iota
	MutationCommitted
	MutationRolledBack
)

// Mutation is the handle returned by Upsert and Remove. Done is closed once
// the remote write has resolved and any rollback has been applied.
type Mutation struct {
	Path      string
	Operation string

	mu    sync.Mutex
	state MutationState
	done  chan struct{}
}

func newMutation(path, op string) *Mutation {
	return &Mutation{Path: path, Operation: op, done: make(chan struct{})}
}

func (m *Mutation) State() MutationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mutation) Done() <-chan struct{} { return m.done }

func (m *Mutation) finish(state MutationState) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
	close(m.done)
}

// CollectionSync binds the document client to one user-scoped collection
// (users/{uid}/cart or users/{uid}/wishlist). The live subscription is the
// single source of truth: optimistic edits are provisional and every server
// snapshot replaces local state wholesale. A generation counter fences off
// anything still in flight when the identity changes, so a stale completion
// can never write into a newer session.
type CollectionSync struct {
	client  store.DocumentClient
	kind    string
	emitter *ErrorEmitter

	mu       sync.Mutex
	uid      string
	gen      uint64
	snapVer  uint64
	status   SyncStatus
	items    map[string]map[string]any // nil until the first snapshot
	cancel   store.CancelFunc
	watchers map[int]chan struct{}
	nextID   int
}

func NewCollectionSync(client store.DocumentClient, kind string, emitter *ErrorEmitter) *CollectionSync {
	return &CollectionSync{
		client:   client,
		kind:     kind,
		emitter:  emitter,
		status:   SyncUnauthenticated,
		watchers: make(map[int]chan struct{}),
	}
}

// Start opens the subscription for uid. Any previous subscription is torn
// down first.
func (s *CollectionSync) Start(uid string) {
	s.mu.Lock()
	prevCancel := s.cancel
	s.cancel = nil
	s.uid = uid
	s.gen++
	gen := s.gen
	s.status = SyncSubscribing
	s.items = nil
	s.mu.Unlock()

	if prevCancel != nil {
		prevCancel()
	}
	s.notify()

	ch, cancel := s.client.SubscribeCollection(context.Background(), store.UserCollectionPath(uid, s.kind))

	s.mu.Lock()
	if s.gen != gen {
		// identity changed while the subscription was being opened
		s.mu.Unlock()
		cancel()
		return
	}
	s.cancel = cancel
	s.mu.Unlock()

	go s.consume(ch, gen)
}

// Stop tears the subscription down and discards cached data. The generation
// bump makes the teardown effective immediately: snapshots or write
// completions still in flight are dropped even if the underlying stream
// takes a moment to wind down.
func (s *CollectionSync) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.uid = ""
	s.gen++
	s.status = SyncUnauthenticated
	s.items = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.notify()
}

func (s *CollectionSync) consume(ch <-chan store.CollectionSnapshot, gen uint64) {
	for snap := range ch {
		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			return
		}
		if snap.Err != nil {
			path := store.UserCollectionPath(s.uid, s.kind)
			s.items = nil
			s.status = SyncError
			s.mu.Unlock()
			s.emitter.EmitError(snap.Err, path, models.OpList, nil)
			s.notify()
			return
		}
		items := make(map[string]map[string]any, len(snap.Docs))
		for _, d := range snap.Docs {
			items[d.ID] = d.Data
		}
		s.items = items
		s.status = SyncLive
		s.snapVer++
		s.mu.Unlock()
		s.notify()
	}
}

// Upsert applies an optimistic merge of data into the document keyed by id
// and issues the remote write. Returns nil when no identity is bound.
func (s *CollectionSync) Upsert(id string, data map[string]any) *Mutation {
	s.mu.Lock()
	if s.uid == "" {
		s.mu.Unlock()
		return nil
	}
	gen, ver := s.gen, s.snapVer
	path := store.DocPath(store.UserCollectionPath(s.uid, s.kind), id)
	prev, existed := s.items[id]
	op := models.OpCreate
	if existed {
		op = models.OpUpdate
	}
	if s.items == nil {
		s.items = make(map[string]map[string]any)
	}
	merged := make(map[string]any, len(prev)+len(data))
	for k, v := range prev {
		merged[k] = v
	}
	for k, v := range data {
		merged[k] = v
	}
	s.items[id] = merged
	s.mu.Unlock()
	s.notify()

	m := newMutation(path, op)
	go func() {
		err := s.client.SetDocument(context.Background(), path, data, true)
		if err == nil {
			m.finish(MutationCommitted)
			return
		}
		s.resolveFailure(m, gen, ver, id, prev, existed, err, data)
	}()
	return m
}

// Remove optimistically deletes the document keyed by id and issues the
// remote delete.
func (s *CollectionSync) Remove(id string) *Mutation {
	s.mu.Lock()
	if s.uid == "" {
		s.mu.Unlock()
		return nil
	}
	gen, ver := s.gen, s.snapVer
	path := store.DocPath(store.UserCollectionPath(s.uid, s.kind), id)
	prev, existed := s.items[id]
	delete(s.items, id)
	s.mu.Unlock()
	s.notify()

	m := newMutation(path, models.OpDelete)
	go func() {
		err := s.client.DeleteDocument(context.Background(), path)
		if err == nil {
			m.finish(MutationCommitted)
			return
		}
		s.resolveFailure(m, gen, ver, id, prev, existed, err, nil)
	}()
	return m
}

// resolveFailure handles a failed remote write: roll the specific optimistic
// edit back, then emit the permission-error event. The rollback is skipped
// when the session generation moved (logout or user switch, the state is
// gone) or when a server snapshot already replaced local state, since server
// truth outranks the saved pre-edit value. The event always goes out: a
// denied write is never silently swallowed, even after sign-out.
//
// The event is labeled with the Mutation's path and operation rather than
// whatever the transport recorded; the remote store reports every denied set
// as an update, which would mislabel a denied create.
func (s *CollectionSync) resolveFailure(m *Mutation, gen, ver uint64, id string, prev map[string]any, existed bool, err error, requestData map[string]any) {
	data := requestData
	if pe, ok := store.AsPermissionError(err); ok && pe.RequestResourceData != nil {
		data = pe.RequestResourceData
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		s.emitter.Emit(m.Path, m.Operation, data)
		m.finish(MutationRolledBack)
		return
	}
	if s.snapVer == ver && s.items != nil {
		if existed {
			s.items[id] = prev
		} else {
			delete(s.items, id)
		}
	}
	s.mu.Unlock()
	s.notify()
	s.emitter.Emit(m.Path, m.Operation, data)
	m.finish(MutationRolledBack)
}

// Snapshot returns the current documents sorted by id and the sync status.
// A nil slice means no snapshot has been computed yet; an empty collection
// yields an empty, non-nil slice.
func (s *CollectionSync) Snapshot() ([]store.Document, SyncStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items == nil {
		return nil, s.status
	}
	docs := make([]store.Document, 0, len(s.items))
	for id, data := range s.items {
		copied := make(map[string]any, len(data))
		for k, v := range data {
			copied[k] = v
		}
		docs = append(docs, store.Document{ID: id, Data: copied})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, s.status
}

// Status reports the state machine position.
func (s *CollectionSync) Status() SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Watch returns a signal channel that fires whenever local state changes.
// Consumers re-read Snapshot on each signal; the channel is a latest-wins
// mailbox so missed signals collapse into one.
func (s *CollectionSync) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = ch
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.watchers, id)
	}
}

func (s *CollectionSync) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
