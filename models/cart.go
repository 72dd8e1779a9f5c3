package models

// CartItem lives at users/{uid}/cart/{productId}. The document id doubles as
// the product id, which makes repeated adds a merge rather than a duplicate.
type CartItem struct {
	ID        string `json:"id"`
	ProductID string `json:"productId" firestore:"productId"`
	Quantity  int    `json:"quantity" firestore:"quantity"`
}

// WishlistItem lives at users/{uid}/wishlist/{productId}. Presence of the
// document is the whole signal; there is no payload beyond the foreign key.
type WishlistItem struct {
	ID        string `json:"id"`
	ProductID string `json:"productId" firestore:"productId"`
}

// CartLine is a cart item joined against the catalog for display. Items
// whose product id no longer resolves are dropped before this point.
type CartLine struct {
	CartItem
	Product   Product `json:"product"`
	LineTotal float64 `json:"lineTotal"`
}
