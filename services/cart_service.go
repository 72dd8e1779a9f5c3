package services

import (
	"errors"

	"github.com/HaiderNafees/ElysianThreads/catalog"
	"github.com/HaiderNafees/ElysianThreads/models"
	"github.com/HaiderNafees/ElysianThreads/store"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrUnknownProduct  = errors.New("product not found in catalog")
	ErrNoIdentity      = errors.New("no authenticated identity")
)

// CartService applies the cart rules on top of a CollectionSync: quantities
// below 1 never reach the remote store, and the product id doubles as the
// document id so re-adding a product merges instead of duplicating.
type CartService struct {
	sync    *CollectionSync
	catalog *catalog.Store
}

func NewCartService(client store.DocumentClient, emitter *ErrorEmitter, cat *catalog.Store) *CartService {
	return &CartService{
		sync:    NewCollectionSync(client, store.KindCart, emitter),
		catalog: cat,
	}
}

func (s *CartService) Sync() *CollectionSync { return s.sync }

// Add puts quantity of a product in the cart. Adding a product that is
// already present overwrites its quantity (idempotent upsert), it never
// creates a second entry.
func (s *CartService) Add(productID string, quantity int) (*Mutation, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if _, ok := s.catalog.Product(productID); !ok {
		return nil, ErrUnknownProduct
	}
	m := s.sync.Upsert(productID, map[string]any{
		"productId": productID,
		"quantity":  quantity,
	})
	if m == nil {
		return nil, ErrNoIdentity
	}
	return m, nil
}

// SetQuantity changes the quantity of a cart entry. A target below 1 is
// rejected client-side: no remote call, no local change, no error.
func (s *CartService) SetQuantity(productID string, quantity int) (*Mutation, error) {
	if quantity < 1 {
		return nil, nil
	}
	m := s.sync.Upsert(productID, map[string]any{
		"productId": productID,
		"quantity":  quantity,
	})
	if m == nil {
		return nil, ErrNoIdentity
	}
	return m, nil
}

// Remove deletes a cart entry outright.
func (s *CartService) Remove(productID string) (*Mutation, error) {
	m := s.sync.Remove(productID)
	if m == nil {
		return nil, ErrNoIdentity
	}
	return m, nil
}

// Items decodes the raw documents into cart items. Entries whose product id
// no longer resolves against the catalog are included here; display joins
// happen in Lines.
func (s *CartService) Items() ([]models.CartItem, SyncStatus) {
	docs, status := s.sync.Snapshot()
	if docs == nil {
		return nil, status
	}
	items := make([]models.CartItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, models.CartItem{
			ID:        d.ID,
			ProductID: stringField(d.Data, "productId"),
			Quantity:  intField(d.Data, "quantity"),
		})
	}
	return items, status
}

// Lines joins the cart against the catalog for display and totals. Dangling
// references are filtered out, never an error.
func (s *CartService) Lines() ([]models.CartLine, float64, SyncStatus) {
	items, status := s.Items()
	if items == nil {
		return nil, 0, status
	}
	lines := make([]models.CartLine, 0, len(items))
	var subtotal float64
	for _, item := range items {
		product, ok := s.catalog.Product(item.ProductID)
		if !ok {
			continue
		}
		total := product.Price * float64(item.Quantity)
		lines = append(lines, models.CartLine{
			CartItem:  item,
			Product:   product,
			LineTotal: total,
		})
		subtotal += total
	}
	return lines, subtotal, status
}

func stringField(data map[string]any, key string) string {
	v, _ := data[key].(string)
	return v
}

// intField tolerates the numeric types different decoders produce.
func intField(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
