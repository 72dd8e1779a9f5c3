package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/HaiderNafees/ElysianThreads/models"
)

// FirestoreClient adapts a Firestore connection to the DocumentClient
// interface. gRPC PermissionDenied is mapped onto *PermissionError so the
// sync layer can roll back and report without knowing the transport.
type FirestoreClient struct {
	fs *firestore.Client
}

func NewFirestoreClient(fs *firestore.Client) *FirestoreClient {
	return &FirestoreClient{fs: fs}
}

func (c *FirestoreClient) SubscribeCollection(ctx context.Context, path string) (<-chan CollectionSnapshot, CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan CollectionSnapshot, 1)

	go func() {
		defer close(ch)
		snaps := c.fs.Collection(path).Snapshots(ctx)
		defer snaps.Stop()
		for {
			qs, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || ctx.Err() != nil {
					return
				}
				replaceCol(ch, CollectionSnapshot{Err: mapError(err, path, models.OpList, nil)})
				return
			}
			docs := make([]Document, 0, qs.Size)
			docIter := qs.Documents
			for {
				d, err := docIter.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					replaceCol(ch, CollectionSnapshot{Err: mapError(err, path, models.OpList, nil)})
					return
				}
				docs = append(docs, Document{ID: d.Ref.ID, Data: d.Data()})
			}
			if ctx.Err() != nil {
				return
			}
			replaceCol(ch, CollectionSnapshot{Docs: docs})
		}
	}()

	return ch, func() { cancel() }
}

func (c *FirestoreClient) SubscribeDocument(ctx context.Context, path string) (<-chan DocumentSnapshot, CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan DocumentSnapshot, 1)

	go func() {
		defer close(ch)
		snaps := c.fs.Doc(path).Snapshots(ctx)
		defer snaps.Stop()
		for {
			ds, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || ctx.Err() != nil {
					return
				}
				replaceDoc(ch, DocumentSnapshot{Err: mapError(err, path, models.OpGet, nil)})
				return
			}
			var doc *Document
			if ds.Exists() {
				doc = &Document{ID: ds.Ref.ID, Data: ds.Data()}
			}
			if ctx.Err() != nil {
				return
			}
			replaceDoc(ch, DocumentSnapshot{Doc: doc})
		}
	}()

	return ch, func() { cancel() }
}

func (c *FirestoreClient) SetDocument(ctx context.Context, path string, data map[string]any, merge bool) error {
	var err error
	if merge {
		_, err = c.fs.Doc(path).Set(ctx, data, firestore.MergeAll)
	} else {
		_, err = c.fs.Doc(path).Set(ctx, data)
	}
	if err != nil {
		return mapError(err, path, models.OpUpdate, data)
	}
	return nil
}

func (c *FirestoreClient) DeleteDocument(ctx context.Context, path string) error {
	if _, err := c.fs.Doc(path).Delete(ctx); err != nil {
		return mapError(err, path, models.OpDelete, nil)
	}
	return nil
}

func (c *FirestoreClient) GetDocumentOnce(ctx context.Context, path string) (*Document, error) {
	ds, err := c.fs.Doc(path).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err, path, models.OpGet, nil)
	}
	return &Document{ID: ds.Ref.ID, Data: ds.Data()}, nil
}

func mapError(err error, path, op string, data map[string]any) error {
	if status.Code(err) == codes.PermissionDenied {
		return &PermissionError{Path: path, Operation: op, RequestResourceData: data}
	}
	return err
}

// replaceCol and replaceDoc keep the 1-slot channel holding the newest
// snapshot: a consumer that falls behind skips straight to current state.

func replaceCol(ch chan CollectionSnapshot, snap CollectionSnapshot) {
	select {
	case <-ch:
	default:
	}
	ch <- snap
}

func replaceDoc(ch chan DocumentSnapshot, snap DocumentSnapshot) {
	select {
	case <-ch:
	default:
	}
	ch <- snap
}
