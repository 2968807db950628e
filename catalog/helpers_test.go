package catalog

import (
	"context"
	"fmt"

	"github.com/LuizVictorr/Achadoos-Amazon/docstore"
	"github.com/LuizVictorr/Achadoos-Amazon/models"
)

func newStore(products map[string]docstore.Record) *docstore.MemoryStore {
	s := docstore.NewMemoryStore()
	for id, rec := range products {
		if err := s.PutRecord(context.Background(), docstore.Join(ProductsPath, id), rec); err != nil {
			panic(err)
		}
	}
	return s
}

func numbered(n int) []models.Product {
	out := make([]models.Product, n)
	for i := range out {
		out[i] = models.Product{ID: fmt.Sprintf("p%03d", i), Name: fmt.Sprintf("Produto %d", i), Category: "Geral"}
	}
	return out
}

func numberedStore(n int) *docstore.MemoryStore {
	recs := make(map[string]docstore.Record, n)
	for _, p := range numbered(n) {
		recs[p.ID] = docstore.Record{"name": p.Name, "category": p.Category}
	}
	return newStore(recs)
}

// blockingReader holds FetchCollection until release is closed.
type blockingReader struct {
	docstore.Reader
	entered chan struct{}
	release chan struct{}
}

func (b *blockingReader) FetchCollection(ctx context.Context, path string) (map[string]docstore.Record, error) {
	close(b.entered)
	<-b.release
	return b.Reader.FetchCollection(ctx, path)
}

type failingReader struct{ err error }

func (f failingReader) FetchCollection(context.Context, string) (map[string]docstore.Record, error) {
	return nil, f.err
}

func (f failingReader) FetchRecord(context.Context, string) (docstore.Record, error) {
	return nil, f.err
}
