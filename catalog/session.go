package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/LuizVictorr/Achadoos-Amazon/models"
)

// ErrSessionClosed is returned by Load when the session was closed while its
// fetch was in flight; the fetched data is discarded.
var ErrSessionClosed = errors.New("catalog: session closed")

// LoadState is the catalogue load lifecycle of one page view.
type LoadState int

const (
	StateLoading LoadState = iota
	StateLoaded
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session is the state of one catalogue page view: the snapshot, its load
// state, and the filter state (search term, category, page).
//
// Load runs at most once. Close invalidates the session so that a fetch still
// in flight cannot write into it.
type Session struct {
	loader   *Loader
	pageSize int
	match    MatchOptions

	mu         sync.Mutex
	generation uint64
	closed     bool
	started    bool
	loaded     chan struct{}
	state      LoadState
	err        error
	products   []models.Product

	searchTerm string
	category   string
	page       int
}

// Option configures a Session.
type Option func(*Session)

func WithPageSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

func WithMatchOptions(opts MatchOptions) Option {
	return func(s *Session) { s.match = opts }
}

func NewSession(loader *Loader, opts ...Option) *Session {
	s := &Session{
		loader:   loader,
		pageSize: DefaultPageSize,
		state:    StateLoading,
		page:     1,
		loaded:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the snapshot. Only the first call fetches; a concurrent call
// waits for it (or for its own ctx) and returns the same outcome.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.started {
		loaded := s.loaded
		s.mu.Unlock()
		select {
		case <-loaded:
		case <-ctx.Done():
			return ctx.Err()
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return ErrSessionClosed
		}
		return s.err
	}
	s.started = true
	gen := s.generation
	s.mu.Unlock()

	products, err := s.loader.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer close(s.loaded)
	if gen != s.generation {
		return ErrSessionClosed
	}
	if err != nil {
		s.state = StateFailed
		s.err = err
		s.products = nil
		return err
	}
	s.state = StateLoaded
	s.products = products
	s.page = clampPage(s.page, s.totalPagesLocked())
	return nil
}

// Close tears the session down; results of an in-flight Load are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	s.generation++
	s.closed = true
	s.mu.Unlock()
}

// Loading is true until the first Load completes, successfully or not.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateLoading
}

func (s *Session) State() LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// SetSearchTerm replaces the search term and returns to the first page.
func (s *Session) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
	s.page = 1
}

// SetCategory replaces the selected category ("" for all) and returns to the
// first page.
func (s *Session) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = category
	s.page = 1
}

// SetPage jumps to page, clamped into the available range.
func (s *Session) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = clampPage(page, s.totalPagesLocked())
}

// Next advances one page unless already on the last one.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page < s.totalPagesLocked() {
		s.page++
	}
}

// Prev goes back one page unless already on the first one.
func (s *Session) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page > 1 {
		s.page--
	}
}

// View is everything a renderer needs for one catalogue page.
type View struct {
	State            LoadState
	Err              error
	Products         []models.Product
	Categories       []string
	SearchTerm       string
	SelectedCategory string
	Page             int
	TotalPages       int
	TotalItems       int
	PageSize         int
}

func (v View) HasPrev() bool { return v.Page > 1 }
func (v View) HasNext() bool { return v.Page < v.TotalPages }

// View derives the current page from the snapshot and filter state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.filteredLocked()
	items, total := Paginate(filtered, s.pageSize, s.page)
	return View{
		State:            s.state,
		Err:              s.err,
		Products:         items,
		Categories:       DistinctCategories(s.products),
		SearchTerm:       s.searchTerm,
		SelectedCategory: s.category,
		Page:             s.page,
		TotalPages:       total,
		TotalItems:       len(filtered),
		PageSize:         s.pageSize,
	}
}

func (s *Session) filteredLocked() []models.Product {
	return Filter(s.products, s.searchTerm, s.category, s.match)
}

func (s *Session) totalPagesLocked() int {
	return TotalPages(len(s.filteredLocked()), s.pageSize)
}
