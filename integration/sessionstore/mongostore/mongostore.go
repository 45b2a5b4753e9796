package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/fluidauth/fluidauth/core/session"
)

// record is the MongoDB document shape; the session ID doubles as _id so the
// collection's primary index enforces uniqueness.
type record struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// Store is a MongoDB-backed session store.
type Store struct {
	col *mongo.Collection
}

// New creates a MongoDB-backed session store on the given collection.
func New(col *mongo.Collection) *Store {
	return &Store{col: col}
}

// EnsureIndexes creates the TTL index letting MongoDB evict expired sessions
// on its own. Clean still works without it.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("mongostore: create ttl index: %w", err)
	}
	return nil
}

// Create persists a new record. The _id index rejects duplicates.
func (s *Store) Create(ctx context.Context, rec session.Record) error {
	_, err := s.col.InsertOne(ctx, toDocument(rec))
	if mongo.IsDuplicateKeyError(err) {
		return session.ErrDuplicateSession
	}
	if err != nil {
		return fmt.Errorf("mongostore: create record: %w", err)
	}
	return nil
}

// Get returns the record with the given ID, or (nil, nil) when absent.
func (s *Store) Get(ctx context.Context, id string) (*session.Record, error) {
	var doc record
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongostore: get record: %w", err)
	}

	rec := fromDocument(doc)
	return &rec, nil
}

// Update replaces the record under id, creating it when absent.
func (s *Store) Update(ctx context.Context, id string, rec session.Record) error {
	doc := toDocument(rec)
	doc.ID = id

	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongostore: update record: %w", err)
	}
	return nil
}

// Delete removes the record. Deleting an absent record is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("mongostore: delete record: %w", err)
	}
	return nil
}

// Clean removes every expired record.
func (s *Store) Clean(ctx context.Context) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now()}})
	if err != nil {
		return fmt.Errorf("mongostore: clean records: %w", err)
	}
	return nil
}

func toDocument(rec session.Record) record {
	return record{ID: rec.ID, UserID: rec.UserID, ExpiresAt: rec.ExpiresAt}
}

func fromDocument(doc record) session.Record {
	return session.Record{ID: doc.ID, UserID: doc.UserID, ExpiresAt: doc.ExpiresAt}
}

var _ session.Store = (*Store)(nil)
