package services

import (
	"context"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/HaiderNafees/ElysianThreads/catalog"
	"github.com/HaiderNafees/ElysianThreads/store"
)

func testCatalog(t *testing.T) *catalog.Store {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func newTestCart(t *testing.T) (*CartService, *store.MemoryClient) {
	t.Helper()
	client := store.NewMemoryClient()
	cart := NewCartService(client, NewErrorEmitter(), testCatalog(t))
	cart.Sync().Start("u1")
	waitFor(t, func() bool { return cart.Sync().Status() == SyncLive })
	return cart, client
}

func TestCartAddValidation(t *testing.T) {
	cart, client := newTestCart(t)

	_, err := cart.Add("1", 0)
	assert.Equal(t, ErrInvalidQuantity, err)

	_, err = cart.Add("not-a-product", 1)
	assert.Equal(t, ErrUnknownProduct, err)

	// neither attempt reached the store
	assert.Equal(t, 0, client.WriteCount())
}

func TestCartAddIsIdempotentUpsert(t *testing.T) {
	cart, _ := newTestCart(t)

	m, err := cart.Add("1", 1)
	assert.Equal(t, nil, err)
	await(t, m)

	m, err = cart.Add("1", 3)
	assert.Equal(t, nil, err)
	await(t, m)

	waitFor(t, func() bool {
		items, _ := cart.Items()
		return len(items) == 1 && items[0].Quantity == 3
	})
}

func TestCartSetQuantityBelowOneIsNoOp(t *testing.T) {
	cart, client := newTestCart(t)

	m, err := cart.Add("1", 2)
	assert.Equal(t, nil, err)
	await(t, m)
	writes := client.WriteCount()

	m, err = cart.SetQuantity("1", 0)
	assert.Equal(t, nil, err)
	if m != nil {
		t.Fatal("expected no mutation for quantity below 1")
	}
	assert.Equal(t, writes, client.WriteCount())

	items, _ := cart.Items()
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartRemove(t *testing.T) {
	cart, _ := newTestCart(t)

	m, err := cart.Add("2", 1)
	assert.Equal(t, nil, err)
	await(t, m)

	m, err = cart.Remove("2")
	assert.Equal(t, nil, err)
	await(t, m)

	waitFor(t, func() bool {
		items, _ := cart.Items()
		return len(items) == 0
	})
}

func TestCartLinesJoinAndSubtotal(t *testing.T) {
	cart, _ := newTestCart(t)
	cat := testCatalog(t)

	m, err := cart.Add("1", 2)
	assert.Equal(t, nil, err)
	await(t, m)
	m, err = cart.Add("2", 1)
	assert.Equal(t, nil, err)
	await(t, m)

	lines, subtotal, status := cart.Lines()
	assert.Equal(t, SyncLive, status)
	assert.Equal(t, 2, len(lines))

	p1, _ := cat.Product("1")
	p2, _ := cat.Product("2")
	assert.Equal(t, p1.Price*2+p2.Price, subtotal)
	for _, line := range lines {
		assert.Equal(t, line.Product.Price*float64(line.Quantity), line.LineTotal)
	}
}

func TestCartLinesFilterDanglingRefs(t *testing.T) {
	cart, client := newTestCart(t)

	// a document referencing a product that no longer exists in the catalog
	path := store.DocPath(store.UserCollectionPath("u1", store.KindCart), "discontinued")
	err := client.SetDocument(context.Background(), path, map[string]any{"productId": "discontinued", "quantity": 1}, true)
	assert.Equal(t, nil, err)

	waitFor(t, func() bool {
		items, _ := cart.Items()
		return len(items) == 1
	})

	lines, subtotal, _ := cart.Lines()
	assert.Equal(t, 0, len(lines))
	assert.Equal(t, float64(0), subtotal)
}

func TestCartRequiresIdentity(t *testing.T) {
	client := store.NewMemoryClient()
	cart := NewCartService(client, NewErrorEmitter(), testCatalog(t))

	_, err := cart.Add("1", 1)
	assert.Equal(t, ErrNoIdentity, err)
	_, err = cart.Remove("1")
	assert.Equal(t, ErrNoIdentity, err)
}
