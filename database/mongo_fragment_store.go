package database

import (
	"context"
	"fmt"

	"github.com/Danilepez/chat-pdf-ai/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoFragmentStore persists fragments in a single configured collection,
// keyed by the (document_id, fragment_index) compound index.
type MongoFragmentStore struct {
	collection *mongo.Collection
}

func NewMongoFragmentStore(ctx context.Context, db *mongo.Database, collectionName string) (*MongoFragmentStore, error) {
	collection := db.Collection(collectionName)

	// The unique compound index is what makes PutFragment an idempotent
	// upsert; creating it is itself idempotent so we do it every startup.
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "document_id", Value: 1},
				{Key: "fragment_index", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, fmt.Errorf("failed to create fragment indexes: %w", err)
	}

	return &MongoFragmentStore{
		collection: collection,
	}, nil
}

func (s *MongoFragmentStore) PutFragment(ctx context.Context, fragment *types.Fragment) error {
	filter := bson.D{
		{Key: "document_id", Value: fragment.DocumentID},
		{Key: "fragment_index", Value: fragment.FragmentIndex},
	}
	_, err := s.collection.ReplaceOne(ctx, filter, fragment, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert fragment %s/%d: %w", fragment.DocumentID, fragment.FragmentIndex, err)
	}
	return nil
}

func (s *MongoFragmentStore) GetFragments(ctx context.Context, documentID string) ([]types.Fragment, error) {
	filter := bson.D{{Key: "document_id", Value: documentID}}
	cursor, err := s.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "fragment_index", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query fragments for %s: %w", documentID, err)
	}
	defer cursor.Close(ctx)

	fragments := []types.Fragment{}
	for cursor.Next(ctx) {
		var fragment types.Fragment
		if err := cursor.Decode(&fragment); err != nil {
			return nil, fmt.Errorf("failed to decode fragment: %w", err)
		}
		fragments = append(fragments, fragment)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return fragments, nil
}
