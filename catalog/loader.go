// Package catalog turns the products collection of the document store into
// what the storefront shows: a loaded snapshot, the category facets, the
// filtered subset and the current page of it.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/LuizVictorr/Achadoos-Amazon/docstore"
	"github.com/LuizVictorr/Achadoos-Amazon/metrics"
	"github.com/LuizVictorr/Achadoos-Amazon/models"
	"go.uber.org/zap"
)

// ProductsPath is the collection every product lives under.
const ProductsPath = "products"

// ErrNotFound means no product exists for the requested id.
var ErrNotFound = errors.New("catalog: product not found")

// FetchRecorder receives one call per store fetch. *metrics.Registry
// satisfies it.
type FetchRecorder interface {
	RecordFetch(kind, outcome string)
}

// Loader reads products from a document store.
type Loader struct {
	reader   docstore.Reader
	path     string
	log      *zap.Logger
	recorder FetchRecorder
}

func NewLoader(reader docstore.Reader, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{reader: reader, path: ProductsPath, log: log}
}

// WithRecorder makes the loader report each fetch outcome to r.
func (l *Loader) WithRecorder(r FetchRecorder) *Loader {
	l.recorder = r
	return l
}

func (l *Loader) record(kind, outcome string) {
	if l.recorder != nil {
		l.recorder.RecordFetch(kind, outcome)
	}
}

// Load fetches the whole collection and flattens it into a snapshot with ids
// attached. The store gives no ordering guarantee, so records are ordered by
// key to keep a single load deterministic.
func (l *Loader) Load(ctx context.Context) ([]models.Product, error) {
	recs, err := l.reader.FetchCollection(ctx, l.path)
	if err != nil {
		l.record("collection", metrics.OutcomeError)
		l.log.Warn("catalog load failed", zap.String("path", l.path), zap.Error(err))
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	l.record("collection", metrics.OutcomeOK)

	keys := make([]string, 0, len(recs))
	for k := range recs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	products := make([]models.Product, 0, len(keys))
	for _, k := range keys {
		products = append(products, models.ProductFromRecord(k, recs[k]))
	}
	l.log.Debug("catalog loaded", zap.Int("products", len(products)))
	return products, nil
}

// FetchByID fetches a single product. Ids the store cannot address are
// reported as ErrNotFound.
func (l *Loader) FetchByID(ctx context.Context, id string) (models.Product, error) {
	rec, err := l.reader.FetchRecord(ctx, docstore.Join(l.path, id))
	switch {
	case errors.Is(err, docstore.ErrNotFound), errors.Is(err, docstore.ErrInvalidKey):
		l.record("record", metrics.OutcomeNotFound)
		l.log.Debug("product not found", zap.String("id", id))
		return models.Product{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	case err != nil:
		l.record("record", metrics.OutcomeError)
		l.log.Warn("product fetch failed", zap.String("id", id), zap.Error(err))
		return models.Product{}, fmt.Errorf("fetch product %q: %w", id, err)
	}
	l.record("record", metrics.OutcomeOK)
	return models.ProductFromRecord(id, rec), nil
}
