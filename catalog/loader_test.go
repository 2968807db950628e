package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/LuizVictorr/Achadoos-Amazon/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderAttachesIDsInKeyOrder(t *testing.T) {
	store := newStore(map[string]docstore.Record{
		"b": {"name": "Teclado", "category": "Periféricos"},
		"a": {"name": "Mouse Gamer", "category": "Periféricos", "photo": "m.png"},
	})

	products, err := NewLoader(store, nil).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "a", products[0].ID)
	assert.Equal(t, "Mouse Gamer", products[0].Name)
	assert.Equal(t, "m.png", products[0].Photo)
	assert.Equal(t, "b", products[1].ID)
}

func TestLoaderEmptyCollection(t *testing.T) {
	products, err := NewLoader(docstore.NewMemoryStore(), nil).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestLoaderFetchError(t *testing.T) {
	cause := &docstore.FetchError{Op: "fetch collection", Path: "products", Err: errors.New("unreachable")}
	_, err := NewLoader(failingReader{err: cause}, nil).Load(context.Background())

	var fe *docstore.FetchError
	assert.ErrorAs(t, err, &fe)
}

func TestFetchByID(t *testing.T) {
	store := newStore(map[string]docstore.Record{
		"p1": {"name": "Mouse Gamer", "link": "https://amzn.to/abc", "video": "https://www.youtube.com/embed/x"},
	})
	p, err := NewLoader(store, nil).FetchByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.True(t, p.HasLink())
	assert.True(t, p.HasVideo())
}

func TestFetchByIDMissing(t *testing.T) {
	_, err := NewLoader(docstore.NewMemoryStore(), nil).FetchByID(context.Background(), "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchByIDUnaddressable(t *testing.T) {
	_, err := NewLoader(docstore.NewMemoryStore(), nil).FetchByID(context.Background(), "a/b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchByIDStoreFailure(t *testing.T) {
	_, err := NewLoader(failingReader{err: errors.New("boom")}, nil).FetchByID(context.Background(), "p1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

type countingRecorder struct{ calls []string }

func (r *countingRecorder) RecordFetch(kind, outcome string) {
	r.calls = append(r.calls, kind+":"+outcome)
}

func TestLoaderRecordsFetchOutcomes(t *testing.T) {
	rec := &countingRecorder{}
	loader := NewLoader(numberedStore(1), nil).WithRecorder(rec)
	ctx := context.Background()

	_, err := loader.Load(ctx)
	require.NoError(t, err)
	_, err = loader.FetchByID(ctx, "p000")
	require.NoError(t, err)
	_, err = loader.FetchByID(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	failing := NewLoader(failingReader{err: errors.New("boom")}, nil).WithRecorder(rec)
	_, err = failing.Load(ctx)
	require.Error(t, err)

	assert.Equal(t, []string{
		"collection:ok",
		"record:ok",
		"record:not_found",
		"collection:error",
	}, rec.calls)
}
