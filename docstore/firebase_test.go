package docstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDatabase answers realtime database REST reads from canned bodies keyed by
// request path ("/products.json").
type fakeDatabase struct {
	mu     sync.Mutex
	bodies map[string]string
	puts   map[string]string
	status int
	delay  time.Duration
}

func (f *fakeDatabase) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-r.Context().Done():
			return
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"error":"Permission denied"}`))
		return
	}
	if r.Method == http.MethodPut {
		body, _ := io.ReadAll(r.Body)
		f.puts[r.URL.Path] = string(body)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	body, ok := f.bodies[r.URL.Path]
	if !ok {
		body = "null"
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func newFirebaseTestStore(t *testing.T, db *fakeDatabase, timeout time.Duration) *FirebaseStore {
	t.Helper()
	if db.puts == nil {
		db.puts = make(map[string]string)
	}
	srv := httptest.NewServer(db)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	store, err := NewFirebaseStore(context.Background(), FirebaseConfig{
		DatabaseURL: "localhost:" + u.Port() + "?ns=storefront-test",
		Timeout:     timeout,
	})
	require.NoError(t, err)
	return store
}

func TestFirebaseFetchCollectionObject(t *testing.T) {
	s := newFirebaseTestStore(t, &fakeDatabase{bodies: map[string]string{
		"/products.json": `{"-Nx1":{"name":"Mouse Gamer","category":"Periféricos"},"-Nx2":{"name":"Teclado"}}`,
	}}, time.Second)

	recs, err := s.FetchCollection(context.Background(), "products")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Mouse Gamer", recs["-Nx1"]["name"])
	assert.Equal(t, "Teclado", recs["-Nx2"]["name"])
}

func TestFirebaseFetchCollectionArray(t *testing.T) {
	s := newFirebaseTestStore(t, &fakeDatabase{bodies: map[string]string{
		"/products.json": `[{"name":"Mouse Gamer","category":"Periféricos"},null,{"name":"Teclado"}]`,
	}}, time.Second)

	recs, err := s.FetchCollection(context.Background(), "products")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Mouse Gamer", recs["0"]["name"])
	assert.Equal(t, "Teclado", recs["2"]["name"])
	assert.NotContains(t, recs, "1")
}

func TestFirebaseFetchCollectionAbsent(t *testing.T) {
	s := newFirebaseTestStore(t, &fakeDatabase{}, time.Second)

	recs, err := s.FetchCollection(context.Background(), "products")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestFirebaseFetchCollectionMalformed(t *testing.T) {
	for name, body := range map[string]string{
		"scalar root":  `42`,
		"scalar child": `{"p1":"not a record"}`,
		"array scalar": `[{"name":"ok"},7]`,
	} {
		t.Run(name, func(t *testing.T) {
			s := newFirebaseTestStore(t, &fakeDatabase{bodies: map[string]string{"/products.json": body}}, time.Second)

			_, err := s.FetchCollection(context.Background(), "products")
			var fe *FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "products", fe.Path)
		})
	}
}

func TestFirebaseFetchRecord(t *testing.T) {
	s := newFirebaseTestStore(t, &fakeDatabase{bodies: map[string]string{
		"/products/p1.json":  `{"name":"Fone Bluetooth","link":"https://amzn.to/x"}`,
		"/products/bad.json": `"just a string"`,
	}}, time.Second)
	ctx := context.Background()

	rec, err := s.FetchRecord(ctx, "products/p1")
	require.NoError(t, err)
	assert.Equal(t, Record{"name": "Fone Bluetooth", "link": "https://amzn.to/x"}, rec)

	_, err = s.FetchRecord(ctx, "products/missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FetchRecord(ctx, "products/bad")
	var fe *FetchError
	assert.ErrorAs(t, err, &fe)

	_, err = s.FetchRecord(ctx, "products/a.b")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestFirebaseServerError(t *testing.T) {
	s := newFirebaseTestStore(t, &fakeDatabase{status: http.StatusUnauthorized}, time.Second)

	_, err := s.FetchCollection(context.Background(), "products")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "fetch collection", fe.Op)
	assert.Error(t, s.Ping(context.Background()))
}

func TestFirebaseTimeout(t *testing.T) {
	s := newFirebaseTestStore(t, &fakeDatabase{delay: 2 * time.Second}, 50*time.Millisecond)

	start := time.Now()
	_, err := s.FetchRecord(context.Background(), "products/p1")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFirebaseWithTimeoutKeepsCallerDeadline(t *testing.T) {
	s := &FirebaseStore{timeout: time.Hour}

	parent, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx, done := s.withTimeout(parent)
	defer done()
	want, _ := parent.Deadline()
	got, ok := ctx.Deadline()
	require.True(t, ok)
	assert.Equal(t, want, got)

	ctx, done = s.withTimeout(context.Background())
	defer done()
	got, ok = ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Hour), got, time.Minute)

	s.timeout = 0
	ctx, done = s.withTimeout(context.Background())
	defer done()
	_, ok = ctx.Deadline()
	assert.False(t, ok)
}

func TestFirebasePingAndPut(t *testing.T) {
	db := &fakeDatabase{bodies: map[string]string{"/.json": `{"products":true}`}}
	s := newFirebaseTestStore(t, db, time.Second)
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.PutRecord(ctx, "products/p9", Record{"name": "Caneca"}))

	db.mu.Lock()
	defer db.mu.Unlock()
	assert.JSONEq(t, `{"name":"Caneca"}`, db.puts["/products/p9.json"])
}
