package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const themeCollection = "theme"

// DefaultListLimit caps ListThemes when the caller does not supply a limit.
const DefaultListLimit = 50

// ErrNotConfigured is returned when no connection string is available.
var ErrNotConfigured = errors.New("document store is not configured")

// Store persists theme documents and reports connectivity.
type Store interface {
	InsertTheme(ctx context.Context, theme Theme) (string, error)
	ListThemes(ctx context.Context, limit int64) ([]map[string]any, error)
	Ping(ctx context.Context) error
	CollectionNames(ctx context.Context) ([]string, error)
	DatabaseName() string
	Close(ctx context.Context) error
}

// MongoStore is the MongoDB-backed Store.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client for the given connection string and selects the
// named database. The driver dials lazily; reachability is observed on the
// first operation (or via Ping).
func Connect(ctx context.Context, uri, name string) (*MongoStore, error) {
	trimmedURI := strings.TrimSpace(uri)
	if trimmedURI == "" {
		return nil, ErrNotConfigured
	}
	dbName := strings.TrimSpace(name)
	if dbName == "" {
		dbName = "translator"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(trimmedURI))
	if err != nil {
		return nil, fmt.Errorf("connect document store: %w", err)
	}

	return &MongoStore{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// InsertTheme stores one theme document and returns its identifier as a string.
func (s *MongoStore) InsertTheme(ctx context.Context, theme Theme) (string, error) {
	if s == nil || s.db == nil {
		return "", ErrNotConfigured
	}

	res, err := s.db.Collection(themeCollection).InsertOne(ctx, theme)
	if err != nil {
		return "", fmt.Errorf("insert theme: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

// ListThemes returns up to limit theme documents with "_id" re-keyed to a
// string "id" field.
func (s *MongoStore) ListThemes(ctx context.Context, limit int64) ([]map[string]any, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	cur, err := s.db.Collection(themeCollection).Find(ctx, bson.D{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query themes: %w", err)
	}

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode themes: %w", err)
	}

	items := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		items = append(items, RekeyID(doc))
	}
	return items, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return ErrNotConfigured
	}
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) CollectionNames(ctx context.Context) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}
	return s.db.ListCollectionNames(ctx, bson.D{})
}

func (s *MongoStore) DatabaseName() string {
	if s == nil || s.db == nil {
		return ""
	}
	return s.db.Name()
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// RekeyID returns a copy of doc with "_id" replaced by a string "id" field.
func RekeyID(doc bson.M) map[string]any {
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		if key == "_id" {
			continue
		}
		out[key] = value
	}

	raw, exists := doc["_id"]
	if !exists {
		return out
	}
	switch id := raw.(type) {
	case primitive.ObjectID:
		out["id"] = id.Hex()
	case string:
		out["id"] = id
	default:
		out["id"] = fmt.Sprintf("%v", id)
	}
	return out
}
