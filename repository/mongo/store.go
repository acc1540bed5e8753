package mongo

import (
	"context"
	"fmt"

	mongolib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fastygo/dualseed/repository"
)

type documentStore struct {
	db *mongolib.Database
}

// NewDocumentStore creates a MongoDB-backed DocumentStore over db.
func NewDocumentStore(db *mongolib.Database) repository.DocumentStore {
	return &documentStore{db: db}
}

func (s *documentStore) InsertMany(ctx context.Context, collection string, docs []any) error {
	if len(docs) == 0 {
		return nil
	}
	opts := options.InsertMany().SetOrdered(false)
	if _, err := s.db.Collection(collection).InsertMany(ctx, docs, opts); err != nil {
		return fmt.Errorf("insert into %s collection: %w", collection, err)
	}
	return nil
}
