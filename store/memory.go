package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/HaiderNafees/ElysianThreads/models"
)

// DenyFunc simulates access-control rules: return true to deny the given
// operation on the given path.
type DenyFunc func(path, operation string) bool

// MemoryClient is an in-process DocumentClient. It is the local development
// backend (STORE_BACKEND=memory) and the deterministic double used by the
// sync-layer tests: snapshots are delivered synchronously on every write and
// cancellation takes effect before the cancel call returns.
type MemoryClient struct {
	mu      sync.Mutex
	docs    map[string]map[string]any
	subs    map[int]*memSub
	nextSub int

	deny        DenyFunc
	beforeWrite func(path, operation string)
	writes      int
}

type memSub struct {
	path  string // collection or document path
	isCol bool
	colCh chan CollectionSnapshot
	docCh chan DocumentSnapshot
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		docs: make(map[string]map[string]any),
		subs: make(map[int]*memSub),
	}
}

// SetDeny installs simulated access rules. Pass nil to allow everything.
func (m *MemoryClient) SetDeny(f DenyFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deny = f
}

// SetBeforeWrite installs a hook invoked before every write is applied,
// outside the client lock. Tests use it to hold writes in flight.
func (m *MemoryClient) SetBeforeWrite(f func(path, operation string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.beforeWrite = f
}

// WriteCount reports how many writes (set or delete) were attempted.
func (m *MemoryClient) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *MemoryClient) SubscribeCollection(ctx context.Context, path string) (<-chan CollectionSnapshot, CancelFunc) {
	ch := make(chan CollectionSnapshot, 1)

	m.mu.Lock()
	if m.deny != nil && m.deny(path, models.OpList) {
		m.mu.Unlock()
		ch <- CollectionSnapshot{Err: &PermissionError{Path: path, Operation: models.OpList}}
		close(ch)
		return ch, func() {}
	}
	id := m.nextSub
	m.nextSub++
	m.subs[id] = &memSub{path: path, isCol: true, colCh: ch}
	ch <- CollectionSnapshot{Docs: m.collectionLocked(path)}
	m.mu.Unlock()

	return ch, func() { m.unsubscribe(id) }
}

func (m *MemoryClient) SubscribeDocument(ctx context.Context, path string) (<-chan DocumentSnapshot, CancelFunc) {
	ch := make(chan DocumentSnapshot, 1)

	m.mu.Lock()
	if m.deny != nil && m.deny(path, models.OpGet) {
		m.mu.Unlock()
		ch <- DocumentSnapshot{Err: &PermissionError{Path: path, Operation: models.OpGet}}
		close(ch)
		return ch, func() {}
	}
	id := m.nextSub
	m.nextSub++
	m.subs[id] = &memSub{path: path, docCh: ch}
	ch <- DocumentSnapshot{Doc: m.documentLocked(path)}
	m.mu.Unlock()

	return ch, func() { m.unsubscribe(id) }
}

func (m *MemoryClient) unsubscribe(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sub, ok := m.subs[id]; ok {
		delete(m.subs, id)
		if sub.isCol {
			close(sub.colCh)
		} else {
			close(sub.docCh)
		}
	}
}

func (m *MemoryClient) SetDocument(ctx context.Context, path string, data map[string]any, merge bool) error {
	m.hook(path, writeOp(m.exists(path)))

	m.mu.Lock()
	m.writes++
	op := models.OpUpdate
	if _, ok := m.docs[path]; !ok {
		op = models.OpCreate
	}
	if m.deny != nil && m.deny(path, op) {
		m.mu.Unlock()
		return &PermissionError{Path: path, Operation: op, RequestResourceData: data}
	}
	doc := map[string]any{}
	if merge {
		for k, v := range m.docs[path] {
			doc[k] = v
		}
	}
	for k, v := range data {
		doc[k] = v
	}
	m.docs[path] = doc
	m.broadcastLocked(path)
	m.mu.Unlock()
	return nil
}

func (m *MemoryClient) DeleteDocument(ctx context.Context, path string) error {
	m.hook(path, models.OpDelete)

	m.mu.Lock()
	m.writes++
	if m.deny != nil && m.deny(path, models.OpDelete) {
		m.mu.Unlock()
		return &PermissionError{Path: path, Operation: models.OpDelete}
	}
	delete(m.docs, path)
	m.broadcastLocked(path)
	m.mu.Unlock()
	return nil
}

func (m *MemoryClient) GetDocumentOnce(ctx context.Context, path string) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deny != nil && m.deny(path, models.OpGet) {
		return nil, &PermissionError{Path: path, Operation: models.OpGet}
	}
	return m.documentLocked(path), nil
}

func (m *MemoryClient) hook(path, op string) {
	m.mu.Lock()
	f := m.beforeWrite
	m.mu.Unlock()
	if f != nil {
		f(path, op)
	}
}

func (m *MemoryClient) exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.docs[path]
	return ok
}

func writeOp(exists bool) string {
	if exists {
		return models.OpUpdate
	}
	return models.OpCreate
}

// collectionLocked returns the direct children of a collection path, sorted
// by document id like the real store orders them.
func (m *MemoryClient) collectionLocked(path string) []Document {
	prefix := path + "/"
	var docs []Document
	for p, data := range m.docs {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		id := p[len(prefix):]
		if strings.Contains(id, "/") {
			continue
		}
		docs = append(docs, Document{ID: id, Data: copyData(data)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}

func (m *MemoryClient) documentLocked(path string) *Document {
	data, ok := m.docs[path]
	if !ok {
		return nil
	}
	id := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		id = path[i+1:]
	}
	return &Document{ID: id, Data: copyData(data)}
}

// broadcastLocked pushes fresh snapshots to every subscriber watching the
// written document or its parent collection. Channels are latest-wins
// mailboxes so a slow consumer only ever sees the newest snapshot.
func (m *MemoryClient) broadcastLocked(path string) {
	parent := ""
	if i := strings.LastIndex(path, "/"); i >= 0 {
		parent = path[:i]
	}
	for _, sub := range m.subs {
		switch {
		case sub.isCol && sub.path == parent:
			select {
			case <-sub.colCh:
			default:
			}
			sub.colCh <- CollectionSnapshot{Docs: m.collectionLocked(sub.path)}
		case !sub.isCol && sub.path == path:
			select {
			case <-sub.docCh:
			default:
			}
			sub.docCh <- DocumentSnapshot{Doc: m.documentLocked(sub.path)}
		}
	}
}

func copyData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
