package services

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/HaiderNafees/ElysianThreads/models"
	"github.com/HaiderNafees/ElysianThreads/store"
)

func newTestWishlist(t *testing.T) (*WishlistService, *store.MemoryClient, *ErrorEmitter) {
	t.Helper()
	client := store.NewMemoryClient()
	emitter := NewErrorEmitter()
	wl := NewWishlistService(client, emitter, testCatalog(t))
	wl.Sync().Start("u1")
	waitFor(t, func() bool { return wl.Sync().Status() == SyncLive })
	return wl, client, emitter
}

func TestWishlistToggleOnOff(t *testing.T) {
	wl, _, _ := newTestWishlist(t)

	m, favorite, err := wl.Toggle("4")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, favorite)
	assert.Equal(t, true, wl.IsFavorite("4"))
	await(t, m)
	assert.Equal(t, MutationCommitted, m.State())

	m, favorite, err = wl.Toggle("4")
	assert.Equal(t, nil, err)
	assert.Equal(t, false, favorite)
	assert.Equal(t, false, wl.IsFavorite("4"))
	await(t, m)
	assert.Equal(t, MutationCommitted, m.State())
}

func TestWishlistToggleUnknownProduct(t *testing.T) {
	wl, client, _ := newTestWishlist(t)

	_, _, err := wl.Toggle("not-a-product")
	assert.Equal(t, ErrUnknownProduct, err)
	assert.Equal(t, 0, client.WriteCount())
}

func TestWishlistDeniedToggleRollsBack(t *testing.T) {
	wl, client, emitter := newTestWishlist(t)
	var events []models.PermissionEvent
	emitter.Subscribe(func(e models.PermissionEvent) { events = append(events, e) })

	client.SetDeny(func(path, operation string) bool {
		return operation == models.OpCreate
	})

	m, favorite, err := wl.Toggle("4")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, favorite)
	await(t, m)

	// heart flips back and exactly one event reports the denial
	assert.Equal(t, MutationRolledBack, m.State())
	assert.Equal(t, false, wl.IsFavorite("4"))
	assert.Equal(t, 1, emitter.Emitted())
	assert.Equal(t, models.OpCreate, events[0].Operation)
	assert.Equal(t, "users/u1/wishlist/4", events[0].Path)
}

func TestWishlistProductsResolveInCatalogOrder(t *testing.T) {
	wl, _, _ := newTestWishlist(t)

	// toggle in reverse catalog order
	for _, id := range []string{"5", "2"} {
		m, _, err := wl.Toggle(id)
		assert.Equal(t, nil, err)
		await(t, m)
	}

	waitFor(t, func() bool {
		products, _ := wl.Products()
		return len(products) == 2
	})
	products, status := wl.Products()
	assert.Equal(t, SyncLive, status)
	assert.Equal(t, "2", products[0].ID)
	assert.Equal(t, "5", products[1].ID)
}
