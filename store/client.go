// Package store abstracts the remote document store the per-user state
// (cart, wishlist, profile) lives in. The storefront core only depends on
// the DocumentClient interface; the Firestore implementation backs
// production and the memory implementation backs local development and
// tests.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Collection kinds under a user namespace.
const (
	KindCart     = "cart"
	KindWishlist = "wishlist"
)

// Path helpers. These namespaces must match the backing store's
// access-control rules exactly.

func UserProfilePath(uid string) string { return "users/" + uid }

func UserCollectionPath(uid, kind string) string { return "users/" + uid + "/" + kind }

func DocPath(collectionPath, id string) string { return collectionPath + "/" + id }

// Document is a point-in-time copy of a stored document.
type Document struct {
	ID   string
	Data map[string]any
}

// CollectionSnapshot carries the full contents of a subscribed collection.
// Every change delivers a complete snapshot, not a diff. Err is set instead
// of Docs when the subscription was denied.
type CollectionSnapshot struct {
	Docs []Document
	Err  error
}

// DocumentSnapshot carries the state of a subscribed document; Doc is nil
// when the document is absent.
type DocumentSnapshot struct {
	Doc *Document
	Err error
}

// CancelFunc tears down a subscription. Implementations guarantee that no
// snapshot is delivered through the stream once the cancel call has
// returned; callers additionally guard against late goroutine deliveries
// with their own session generation checks.
type CancelFunc func()

// DocumentClient is the capability surface the sync layer consumes.
type DocumentClient interface {
	SubscribeCollection(ctx context.Context, path string) (<-chan CollectionSnapshot, CancelFunc)
	SubscribeDocument(ctx context.Context, path string) (<-chan DocumentSnapshot, CancelFunc)

	// SetDocument writes data at path. With merge set, fields absent from
	// data are left untouched.
	SetDocument(ctx context.Context, path string, data map[string]any, merge bool) error
	DeleteDocument(ctx context.Context, path string) error

	// GetDocumentOnce returns (nil, nil) for an absent document.
	GetDocumentOnce(ctx context.Context, path string) (*Document, error)
}

// PermissionError reports a read or write denied by the store's access
// rules. Operation uses the rule verbs: get, list, create, update, delete.
type PermissionError struct {
	Path                string
	Operation           string
	RequestResourceData map[string]any
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s on %s", e.Operation, e.Path)
}

// AsPermissionError unwraps err into a PermissionError if it is one.
func AsPermissionError(err error) (*PermissionError, bool) {
	var pe *PermissionError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
