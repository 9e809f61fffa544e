package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "trophyseeker/internal/errors"
)

const kvCollection = "kv"

type kvDocument struct {
	Key       string     `bson:"_id"`
	Value     []byte     `bson:"value"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

type MongoKVStorage struct {
	database *mongo.Database
}

func NewMongoKVStorage(database *mongo.Database) *MongoKVStorage {
	return &MongoKVStorage{database: database}
}

// EnsureIndexes creates the TTL index so the server drops expired sessions.
func (m *MongoKVStorage) EnsureIndexes(ctx context.Context) error {
	_, err := m.database.Collection(kvCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

func (m *MongoKVStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var doc kvDocument
	err := m.database.Collection(kvCollection).FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrKeyNotFound
		}
		return nil, err
	}
	// the TTL monitor runs once a minute, so expiry is checked on read as well
	if doc.ExpiresAt != nil && !time.Now().Before(*doc.ExpiresAt) {
		return nil, errs.ErrKeyNotFound
	}
	return doc.Value, nil
}

func (m *MongoKVStorage) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	doc := kvDocument{Key: key, Value: value}
	if ttl > 0 {
		expiresAt := time.Now().Add(ttl)
		doc.ExpiresAt = &expiresAt
	}
	_, err := m.database.Collection(kvCollection).ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: key}}, doc, options.Replace().SetUpsert(true))
	return err
}

func (m *MongoKVStorage) Delete(ctx context.Context, key string) error {
	_, err := m.database.Collection(kvCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: key}})
	return err
}

func (m *MongoKVStorage) Ping(ctx context.Context) error {
	return m.database.Client().Ping(ctx, nil)
}
