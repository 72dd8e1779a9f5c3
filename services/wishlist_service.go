package services

import (
	"github.com/HaiderNafees/ElysianThreads/catalog"
	"github.com/HaiderNafees/ElysianThreads/models"
	"github.com/HaiderNafees/ElysianThreads/store"
)

// WishlistService wraps a CollectionSync with boolean-presence semantics:
// a document keyed by product id exists while the product is favorited and
// carries nothing but the foreign key.
type WishlistService struct {
	sync    *CollectionSync
	catalog *catalog.Store
}

func NewWishlistService(client store.DocumentClient, emitter *ErrorEmitter, cat *catalog.Store) *WishlistService {
	return &WishlistService{
		sync:    NewCollectionSync(client, store.KindWishlist, emitter),
		catalog: cat,
	}
}

func (s *WishlistService) Sync() *CollectionSync { return s.sync }

// IsFavorite reports whether the product is currently favorited.
func (s *WishlistService) IsFavorite(productID string) bool {
	docs, _ := s.sync.Snapshot()
	for _, d := range docs {
		if d.ID == productID {
			return true
		}
	}
	return false
}

// Toggle flips the favorite state of a product. The returned bool is the
// optimistic state after the flip.
func (s *WishlistService) Toggle(productID string) (*Mutation, bool, error) {
	if s.IsFavorite(productID) {
		m := s.sync.Remove(productID)
		if m == nil {
			return nil, false, ErrNoIdentity
		}
		return m, false, nil
	}
	if _, ok := s.catalog.Product(productID); !ok {
		return nil, false, ErrUnknownProduct
	}
	m := s.sync.Upsert(productID, map[string]any{"productId": productID})
	if m == nil {
		return nil, false, ErrNoIdentity
	}
	return m, true, nil
}

// Items decodes the raw wishlist documents.
func (s *WishlistService) Items() ([]models.WishlistItem, SyncStatus) {
	docs, status := s.sync.Snapshot()
	if docs == nil {
		return nil, status
	}
	items := make([]models.WishlistItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, models.WishlistItem{
			ID:        d.ID,
			ProductID: stringField(d.Data, "productId"),
		})
	}
	return items, status
}

// Products resolves the wishlist against the catalog in catalog order,
// dropping dangling references.
func (s *WishlistService) Products() ([]models.Product, SyncStatus) {
	items, status := s.Items()
	if items == nil {
		return nil, status
	}
	favorited := make(map[string]bool, len(items))
	for _, item := range items {
		favorited[item.ProductID] = true
	}
	products := make([]models.Product, 0, len(items))
	for _, p := range s.catalog.Products() {
		if favorited[p.ID] {
			products = append(products, p)
		}
	}
	return products, status
}
