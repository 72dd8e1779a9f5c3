package services

import (
	"context"
	"log"
	"sync"

	"github.com/HaiderNafees/ElysianThreads/catalog"
	"github.com/HaiderNafees/ElysianThreads/models"
	"github.com/HaiderNafees/ElysianThreads/store"
)

// UserSession bundles the per-user reactive state: identity plus the cart
// and wishlist syncs. The syncs listen to the session state, so identity
// transitions are the only thing that opens or closes their subscriptions.
type UserSession struct {
	State    *SessionState
	Cart     *CartService
	Wishlist *WishlistService
}

func NewUserSession(client store.DocumentClient, emitter *ErrorEmitter, cat *catalog.Store) *UserSession {
	us := &UserSession{
		State:    NewSessionState(),
		Cart:     NewCartService(client, emitter, cat),
		Wishlist: NewWishlistService(client, emitter, cat),
	}
	us.State.OnChange(func(change SessionChange) {
		if change.Status == SessionAuthenticated {
			us.Cart.Sync().Start(change.Identity.UID)
			us.Wishlist.Sync().Start(change.Identity.UID)
			return
		}
		us.Cart.Sync().Stop()
		us.Wishlist.Sync().Stop()
	})
	return us
}

// SessionRegistry tracks live user sessions by uid.
type SessionRegistry struct {
	client  store.DocumentClient
	emitter *ErrorEmitter
	catalog *catalog.Store

	mu       sync.Mutex
	sessions map[string]*UserSession
}

func NewSessionRegistry(client store.DocumentClient, emitter *ErrorEmitter, cat *catalog.Store) *SessionRegistry {
	return &SessionRegistry{
		client:   client,
		emitter:  emitter,
		catalog:  cat,
		sessions: make(map[string]*UserSession),
	}
}

// Ensure returns the live session for the identity, creating and attaching
// one when none exists (e.g. after a restart with a still-valid token).
func (r *SessionRegistry) Ensure(id models.Identity) *UserSession {
	r.mu.Lock()
	session, ok := r.sessions[id.UID]
	if !ok {
		session = NewUserSession(r.client, r.emitter, r.catalog)
		r.sessions[id.UID] = session
	}
	r.mu.Unlock()

	if status, _ := session.State.Current(); status != SessionAuthenticated {
		session.State.SetIdentity(id)
	}
	return session
}

// Get looks up a live session without creating one.
func (r *SessionRegistry) Get(uid string) (*UserSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[uid]
	return session, ok
}

// Detach signs the user out: subscriptions are torn down synchronously and
// cached collection data is discarded before the call returns, so nothing
// bleeds into a later session for the same or another uid.
func (r *SessionRegistry) Detach(uid string) {
	r.mu.Lock()
	session, ok := r.sessions[uid]
	delete(r.sessions, uid)
	r.mu.Unlock()

	if ok {
		session.State.Clear()
	}
}

// SaveProfile merge-writes the users/{uid} profile document. Fields not in
// the write are preserved. A denial rolls nothing back (there is no local
// profile cache) but still produces a permission-error event.
func (r *SessionRegistry) SaveProfile(ctx context.Context, id models.Identity) error {
	return r.MergeProfile(ctx, id.UID, map[string]any{
		"uid":         id.UID,
		"email":       id.Email,
		"displayName": id.DisplayName,
		"photoURL":    id.PhotoURL,
	})
}

// MergeProfile merge-writes an arbitrary subset of profile fields.
func (r *SessionRegistry) MergeProfile(ctx context.Context, uid string, fields map[string]any) error {
	path := store.UserProfilePath(uid)
	err := r.client.SetDocument(ctx, path, fields, true)
	if err != nil {
		r.emitter.EmitError(err, path, models.OpUpdate, fields)
	}
	return err
}

// FetchProfile reads users/{uid} once. An absent document is (nil, nil); a
// denied read produces a permission-error event like the write paths do.
func (r *SessionRegistry) FetchProfile(ctx context.Context, uid string) (*store.Document, error) {
	path := store.UserProfilePath(uid)
	doc, err := r.client.GetDocumentOnce(ctx, path)
	if err != nil {
		r.emitter.EmitError(err, path, models.OpGet, nil)
		return nil, err
	}
	return doc, nil
}

// Client exposes the document client for read paths (profile fetch).
func (r *SessionRegistry) Client() store.DocumentClient { return r.client }

var registry *SessionRegistry

// InitSessions wires the package-wide registry. Called once from main.
func InitSessions(client store.DocumentClient, emitter *ErrorEmitter, cat *catalog.Store) {
	registry = NewSessionRegistry(client, emitter, cat)
	log.Println("✅ Session registry initialized")
}

// Sessions returns the registry configured by InitSessions.
func Sessions() *SessionRegistry { return registry }
