package docstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

// FirebaseConfig holds the realtime database connection settings.
type FirebaseConfig struct {
	DatabaseURL     string
	CredentialsFile string
	Timeout         time.Duration
}

// FirebaseStore reads from a Firebase Realtime Database, the store the
// catalogue was originally published to.
type FirebaseStore struct {
	client  *db.Client
	timeout time.Duration
}

func NewFirebaseStore(ctx context.Context, cfg FirebaseConfig) (*FirebaseStore, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("firebase database URL is required")
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: cfg.DatabaseURL}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise firebase app: %w", err)
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create realtime database client: %w", err)
	}
	return &FirebaseStore{client: client, timeout: cfg.Timeout}, nil
}

func (s *FirebaseStore) FetchCollection(ctx context.Context, path string) (map[string]Record, error) {
	if err := ValidateCollection(path); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var raw any
	if err := s.client.NewRef(path).Get(ctx, &raw); err != nil {
		return nil, fetchErr("fetch collection", path, err)
	}
	switch tree := raw.(type) {
	case nil:
		return map[string]Record{}, nil
	case map[string]any:
		return recordsFromTree(path, tree)
	case []any:
		// The database returns children keyed 0..n as an array.
		return recordsFromTree(path, arrayTree(tree))
	default:
		return nil, fetchErr("fetch collection", path, fmt.Errorf("expected object, got %T", raw))
	}
}

func (s *FirebaseStore) FetchRecord(ctx context.Context, path string) (Record, error) {
	if _, _, err := SplitRecordPath(path); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var raw any
	if err := s.client.NewRef(path).Get(ctx, &raw); err != nil {
		return nil, fetchErr("fetch record", path, err)
	}
	if raw == nil {
		return nil, ErrNotFound
	}
	fields, ok := raw.(map[string]any)
	if !ok {
		return nil, fetchErr("fetch record", path, fmt.Errorf("expected object, got %T", raw))
	}
	return Record(fields), nil
}

func (s *FirebaseStore) PutRecord(ctx context.Context, path string, rec Record) error {
	if _, _, err := SplitRecordPath(path); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.client.NewRef(path).Set(ctx, map[string]any(rec))
}

// Ping does a shallow read of the root; the realtime database has no
// dedicated health call.
func (s *FirebaseStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var keys map[string]any
	return s.client.NewRef("/").GetShallow(ctx, &keys)
}

func (s *FirebaseStore) Close() error { return nil }

func (s *FirebaseStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// arrayTree keys array children by index, dropping the holes left by
// deleted records.
func arrayTree(items []any) map[string]any {
	tree := make(map[string]any, len(items))
	for i, child := range items {
		if child == nil {
			continue
		}
		tree[strconv.Itoa(i)] = child
	}
	return tree
}

// recordsFromTree converts a decoded collection node into records. Children
// that are not objects make the payload malformed.
func recordsFromTree(path string, tree map[string]any) (map[string]Record, error) {
	out := make(map[string]Record, len(tree))
	for key, child := range tree {
		fields, ok := child.(map[string]any)
		if !ok {
			return nil, fetchErr("fetch collection", path, fmt.Errorf("record %q is %T, not an object", key, child))
		}
		out[key] = Record(fields)
	}
	return out, nil
}
