package repository

import (
	"context"
	"net/url"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"marketplace/internal/domain/repository"
	"marketplace/pkg/errors"
)

type firestoreStorage struct {
	client     *firestore.Client
	collection string
}

type kvDocument struct {
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// NewFirestoreStorage keeps one document per key inside collection.
func NewFirestoreStorage(client *firestore.Client, collection string) repository.Storage {
	return &firestoreStorage{
		client:     client,
		collection: collection,
	}
}

// Document ids may not contain '/', user ids might.
func (s *firestoreStorage) doc(key string) *firestore.DocumentRef {
	return s.client.Collection(s.collection).Doc(url.PathEscape(key))
}

func (s *firestoreStorage) Get(ctx context.Context, key string) (string, bool, error) {
	snap, err := s.doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", false, nil
		}
		return "", false, errors.Internal("Failed to get document", err)
	}

	var doc kvDocument
	if err := snap.DataTo(&doc); err != nil {
		return "", false, errors.Internal("Failed to parse document data", err)
	}
	return doc.Value, true, nil
}

func (s *firestoreStorage) Set(ctx context.Context, key, value string) error {
	_, err := s.doc(key).Set(ctx, kvDocument{
		Value:     value,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return errors.Internal("Failed to write document", err)
	}
	return nil
}

func (s *firestoreStorage) Delete(ctx context.Context, key string) error {
	_, err := s.doc(key).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete document", err)
	}
	return nil
}
