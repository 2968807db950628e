// Package docstore is the read interface to the remote document store that holds
// the product catalogue. Records live under slash separated paths: a collection
// ("products") holds keyed records ("products/{id}").
package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by FetchRecord when no record exists at the path.
	ErrNotFound = errors.New("docstore: record not found")
	// ErrInvalidKey is returned when a path segment cannot address a record.
	ErrInvalidKey = errors.New("docstore: invalid key")

	errClosed = errors.New("store is closed")
)

// Record is a schemaless document as returned by the store.
type Record map[string]any

// Reader fetches whole collections or single records.
type Reader interface {
	// FetchCollection returns every record under path keyed by record key.
	// A collection that does not exist yields an empty map.
	FetchCollection(ctx context.Context, path string) (map[string]Record, error)
	// FetchRecord returns the record at path, or ErrNotFound.
	FetchRecord(ctx context.Context, path string) (Record, error)
}

// Writer stores a record at path. Only the seed tooling writes.
type Writer interface {
	PutRecord(ctx context.Context, path string, rec Record) error
}

// Store is a connected backend.
type Store interface {
	Reader
	Writer
	Ping(ctx context.Context) error
	Close() error
}

// FetchError wraps a transport or decoding failure.
type FetchError struct {
	Op   string
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("docstore: %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func fetchErr(op, path string, err error) error {
	return &FetchError{Op: op, Path: path, Err: err}
}

// Join builds a record path from a collection and key.
func Join(collection, key string) string {
	return collection + "/" + key
}

// SplitRecordPath splits "collection/key" and validates both segments.
func SplitRecordPath(path string) (collection, key string, err error) {
	collection, key, ok := strings.Cut(path, "/")
	if !ok {
		return "", "", fmt.Errorf("%w: %q is not a record path", ErrInvalidKey, path)
	}
	if err := ValidateKey(collection); err != nil {
		return "", "", err
	}
	if err := ValidateKey(key); err != nil {
		return "", "", err
	}
	return collection, key, nil
}

// ValidateCollection checks a collection path.
func ValidateCollection(path string) error {
	return ValidateKey(path)
}

// ValidateKey rejects empty keys and the characters the realtime database
// forbids in keys.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if strings.ContainsAny(key, ".$#[]/") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
