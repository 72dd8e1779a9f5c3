package services

import (
	"context"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/HaiderNafees/ElysianThreads/models"
	"github.com/HaiderNafees/ElysianThreads/store"
)

func TestSessionStateTransitions(t *testing.T) {
	s := NewSessionState()
	status, identity := s.Current()
	assert.Equal(t, SessionLoading, status)
	if identity != nil {
		t.Fatal("expected no identity while loading")
	}

	var changes []SessionChange
	s.OnChange(func(c SessionChange) { changes = append(changes, c) })

	s.SetIdentity(models.Identity{UID: "u1", Email: "u1@example.com"})
	status, identity = s.Current()
	assert.Equal(t, SessionAuthenticated, status)
	assert.Equal(t, "u1", identity.UID)

	s.Clear()
	status, identity = s.Current()
	assert.Equal(t, SessionNone, status)
	if identity != nil {
		t.Fatal("expected identity cleared after sign-out")
	}

	// listeners ran synchronously, once per transition
	assert.Equal(t, 2, len(changes))
	assert.Equal(t, SessionAuthenticated, changes[0].Status)
	assert.Equal(t, SessionNone, changes[1].Status)
}

func TestUserSessionFollowsIdentity(t *testing.T) {
	client := store.NewMemoryClient()
	us := NewUserSession(client, NewErrorEmitter(), testCatalog(t))

	assert.Equal(t, SyncUnauthenticated, us.Cart.Sync().Status())
	assert.Equal(t, SyncUnauthenticated, us.Wishlist.Sync().Status())

	us.State.SetIdentity(models.Identity{UID: "u1"})
	waitFor(t, func() bool {
		return us.Cart.Sync().Status() == SyncLive && us.Wishlist.Sync().Status() == SyncLive
	})

	us.State.Clear()
	assert.Equal(t, SyncUnauthenticated, us.Cart.Sync().Status())
	assert.Equal(t, SyncUnauthenticated, us.Wishlist.Sync().Status())
	items, _ := us.Cart.Items()
	if items != nil {
		t.Fatalf("expected cart discarded on sign-out, got %v", items)
	}
}

func TestRegistryEnsureAndDetach(t *testing.T) {
	client := store.NewMemoryClient()
	reg := NewSessionRegistry(client, NewErrorEmitter(), testCatalog(t))

	id := models.Identity{UID: "u1", DisplayName: "Ada"}
	session := reg.Ensure(id)
	waitFor(t, func() bool { return session.Cart.Sync().Status() == SyncLive })

	// same identity maps to the same live session
	again := reg.Ensure(id)
	if again != session {
		t.Fatal("expected Ensure to reuse the live session")
	}

	reg.Detach("u1")
	_, ok := reg.Get("u1")
	assert.Equal(t, false, ok)
	assert.Equal(t, SyncUnauthenticated, session.Cart.Sync().Status())
}

func TestRegistryIsolatesUsers(t *testing.T) {
	client := store.NewMemoryClient()
	reg := NewSessionRegistry(client, NewErrorEmitter(), testCatalog(t))

	alice := reg.Ensure(models.Identity{UID: "alice"})
	waitFor(t, func() bool { return alice.Cart.Sync().Status() == SyncLive })
	m, err := alice.Cart.Add("1", 2)
	assert.Equal(t, nil, err)
	await(t, m)

	bob := reg.Ensure(models.Identity{UID: "bob"})
	waitFor(t, func() bool { return bob.Cart.Sync().Status() == SyncLive })
	items, _ := bob.Cart.Items()
	assert.Equal(t, 0, len(items))
}

func TestRegistryMergeProfile(t *testing.T) {
	client := store.NewMemoryClient()
	reg := NewSessionRegistry(client, NewErrorEmitter(), testCatalog(t))
	ctx := context.Background()

	id := models.Identity{UID: "u1", Email: "u1@example.com", DisplayName: "Ada"}
	err := reg.SaveProfile(ctx, id)
	assert.Equal(t, nil, err)

	err = reg.MergeProfile(ctx, "u1", map[string]any{"displayName": "Ada L."})
	assert.Equal(t, nil, err)

	doc, err := client.GetDocumentOnce(ctx, store.UserProfilePath("u1"))
	assert.Equal(t, nil, err)
	assert.Equal(t, "Ada L.", doc.Data["displayName"])
	// untouched fields survive the partial update
	assert.Equal(t, "u1@example.com", doc.Data["email"])
}

func TestRegistryProfileDenialEmitsEvent(t *testing.T) {
	client := store.NewMemoryClient()
	emitter := NewErrorEmitter()
	reg := NewSessionRegistry(client, emitter, testCatalog(t))

	client.SetDeny(func(path, operation string) bool {
		return path == store.UserProfilePath("u1")
	})

	err := reg.SaveProfile(context.Background(), models.Identity{UID: "u1"})
	assert.NotEqual(t, nil, err)
	assert.Equal(t, 1, emitter.Emitted())
}

func TestRegistryFetchProfile(t *testing.T) {
	client := store.NewMemoryClient()
	reg := NewSessionRegistry(client, NewErrorEmitter(), testCatalog(t))
	ctx := context.Background()

	// absent document is not an error
	doc, err := reg.FetchProfile(ctx, "u1")
	assert.Equal(t, nil, err)
	if doc != nil {
		t.Fatalf("expected nil doc for absent profile, got %v", doc)
	}

	err = reg.SaveProfile(ctx, models.Identity{UID: "u1", DisplayName: "Ada"})
	assert.Equal(t, nil, err)
	doc, err = reg.FetchProfile(ctx, "u1")
	assert.Equal(t, nil, err)
	assert.Equal(t, "Ada", doc.Data["displayName"])
}

func TestRegistryFetchProfileDenialEmitsEvent(t *testing.T) {
	client := store.NewMemoryClient()
	emitter := NewErrorEmitter()
	var events []models.PermissionEvent
	emitter.Subscribe(func(e models.PermissionEvent) { events = append(events, e) })
	reg := NewSessionRegistry(client, emitter, testCatalog(t))

	client.SetDeny(func(path, operation string) bool {
		return operation == models.OpGet
	})

	_, err := reg.FetchProfile(context.Background(), "u1")
	assert.NotEqual(t, nil, err)
	assert.Equal(t, 1, emitter.Emitted())
	assert.Equal(t, models.OpGet, events[0].Operation)
	assert.Equal(t, store.UserProfilePath("u1"), events[0].Path)
}
