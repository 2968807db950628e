package docstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URL              string
	Database         string
	ConnectTimeout   time.Duration
	OperationTimeout time.Duration
}

// MongoStore maps a path's collection segment to a MongoDB collection and the
// record key to the document _id.
type MongoStore struct {
	client   *mongo.Client
	database string
	timeout  time.Duration
	mu       sync.RWMutex
	closed   bool
}

// NewMongoStore connects and pings the primary. It does not create
// collections or indexes.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("mongodb URL is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("mongodb database is required")
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 5 * time.Second
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = 5 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoStore{
		client:   client,
		database: cfg.Database,
		timeout:  cfg.OperationTimeout,
	}, nil
}

func (s *MongoStore) collection(name string) *mongo.Collection {
	return s.client.Database(s.database).Collection(name)
}

func (s *MongoStore) FetchCollection(ctx context.Context, path string) (map[string]Record, error) {
	if err := ValidateCollection(path); err != nil {
		return nil, err
	}
	if s.isClosed() {
		return nil, fetchErr("fetch collection", path, errClosed)
	}
	opCtx, cancel := s.withOperationTimeout(ctx)
	defer cancel()

	cur, err := s.collection(path).Find(opCtx, bson.D{})
	if err != nil {
		return nil, fetchErr("fetch collection", path, err)
	}
	defer cur.Close(opCtx)

	out := make(map[string]Record)
	for cur.Next(opCtx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fetchErr("fetch collection", path, err)
		}
		key, rec := recordFromDocument(doc)
		out[key] = rec
	}
	if err := cur.Err(); err != nil {
		return nil, fetchErr("fetch collection", path, err)
	}
	return out, nil
}

func (s *MongoStore) FetchRecord(ctx context.Context, path string) (Record, error) {
	coll, key, err := SplitRecordPath(path)
	if err != nil {
		return nil, err
	}
	if s.isClosed() {
		return nil, fetchErr("fetch record", path, errClosed)
	}
	opCtx, cancel := s.withOperationTimeout(ctx)
	defer cancel()

	var doc bson.M
	err = s.collection(coll).FindOne(opCtx, idFilter(key)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fetchErr("fetch record", path, err)
	}
	_, rec := recordFromDocument(doc)
	return rec, nil
}

func (s *MongoStore) PutRecord(ctx context.Context, path string, rec Record) error {
	coll, key, err := SplitRecordPath(path)
	if err != nil {
		return err
	}
	if s.isClosed() {
		return errClosed
	}
	opCtx, cancel := s.withOperationTimeout(ctx)
	defer cancel()

	doc := bson.M{"_id": key}
	for k, v := range rec {
		if k == "_id" {
			continue
		}
		doc[k] = v
	}
	_, err = s.collection(coll).ReplaceOne(opCtx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if s.isClosed() {
		return fmt.Errorf("mongodb store is closed")
	}
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to close mongodb connection: %w", err)
	}
	return nil
}

func (s *MongoStore) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *MongoStore) withOperationTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// idFilter matches string ids and, for 24 char hex keys, ObjectIDs written by
// other tools.
func idFilter(key string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(key); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{key, oid}}}
	}
	return bson.M{"_id": key}
}

func recordFromDocument(doc bson.M) (string, Record) {
	key := keyFromID(doc["_id"])
	rec := make(Record, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		rec[k] = plainValue(v)
	}
	return key, rec
}

func keyFromID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case primitive.ObjectID:
		return v.Hex()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// plainValue converts driver container types into plain maps and slices so
// records look the same whichever backend produced them.
func plainValue(v any) any {
	switch t := v.(type) {
	case primitive.M:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = plainValue(inner)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plainValue(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = plainValue(inner)
		}
		return out
	case primitive.ObjectID:
		return t.Hex()
	default:
		return v
	}
}
