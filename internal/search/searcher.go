package search

import (
	"strings"
	"sync"
	"time"

	"rolodex/internal/domain/entity"
	"rolodex/internal/store"

	"github.com/google/uuid"
)

// Filters is the structured part of the query state.
type Filters struct {
	GroupIDs      []uuid.UUID
	FavoritesOnly bool
}

// FiltersPatch is a typed partial update for Filters.
type FiltersPatch struct {
	GroupIDs      *[]uuid.UUID
	FavoritesOnly *bool
}

// Searcher holds transient query state and keeps a derived result list
// consistent with the entity store. Free-text changes are debounced; filter
// and store changes recompute immediately.
//
// Every scheduled computation carries a monotonically increasing token. A
// computation only publishes its results if its token is still the latest at
// completion time, so a slow search for a superseded query can never
// overwrite results for a newer one.
type Searcher struct {
	mu       sync.Mutex
	st       *store.Store
	engine   *Engine
	debounce time.Duration

	query   string
	filters Filters
	results []*entity.Contact

	token uint64
	timer *time.Timer

	unsubscribe func()
	onChange    func()
}

// NewSearcher builds a searcher bound to the given store. The searcher
// subscribes to the store and recomputes results after every mutation.
// Call Close when done to release the subscription and any pending timer.
func NewSearcher(st *store.Store, engine *Engine, debounce time.Duration) *Searcher {
	s := &Searcher{
		st:       st,
		engine:   engine,
		debounce: debounce,
	}
	s.unsubscribe = st.Subscribe(func(store.Snapshot) {
		s.mu.Lock()
		s.recomputeLocked()
	})

	return s
}

// OnChange registers a callback invoked after the derived results change.
// Pass nil to remove it.
func (s *Searcher) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// SetQuery stores the raw query text verbatim and schedules a recomputation
// after the debounce window. Only the last query change within the window
// actually triggers computation.
func (s *Searcher) SetQuery(text string) {
	s.mu.Lock()
	s.query = text
	s.token++
	tok := s.token
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.debounce <= 0 {
		s.computeLocked(tok)

		return
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		s.computeLocked(tok)
	})
	s.mu.Unlock()
}

// Query returns the current raw query text.
func (s *Searcher) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.query
}

// SetFilters merges the patch into the filter state and recomputes
// immediately.
func (s *Searcher) SetFilters(patch FiltersPatch) {
	s.mu.Lock()
	if patch.GroupIDs != nil {
		s.filters.GroupIDs = append([]uuid.UUID(nil), (*patch.GroupIDs)...)
	}
	if patch.FavoritesOnly != nil {
		s.filters.FavoritesOnly = *patch.FavoritesOnly
	}
	s.recomputeLocked()
}

// AddGroupFilter adds a group to the filter set and recomputes immediately.
func (s *Searcher) AddGroupFilter(id uuid.UUID) {
	s.mu.Lock()
	for _, cur := range s.filters.GroupIDs {
		if cur == id {
			s.recomputeLocked()

			return
		}
	}
	s.filters.GroupIDs = append(s.filters.GroupIDs, id)
	s.recomputeLocked()
}

// RemoveGroupFilter removes a group from the filter set and recomputes
// immediately.
func (s *Searcher) RemoveGroupFilter(id uuid.UUID) {
	s.mu.Lock()
	out := s.filters.GroupIDs[:0]
	for _, cur := range s.filters.GroupIDs {
		if cur != id {
			out = append(out, cur)
		}
	}
	s.filters.GroupIDs = out
	s.recomputeLocked()
}

// ToggleFavoritesFilter flips the favorites-only flag and recomputes
// immediately.
func (s *Searcher) ToggleFavoritesFilter() {
	s.mu.Lock()
	s.filters.FavoritesOnly = !s.filters.FavoritesOnly
	s.recomputeLocked()
}

// Filters returns a copy of the current filter state.
func (s *Searcher) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Filters{
		GroupIDs:      append([]uuid.UUID(nil), s.filters.GroupIDs...),
		FavoritesOnly: s.filters.FavoritesOnly,
	}
}

// ClearSearch resets the query to empty, the filters to their defaults and
// clears the derived results. Any pending debounced computation is dropped.
func (s *Searcher) ClearSearch() {
	s.mu.Lock()
	s.query = ""
	s.filters = Filters{}
	s.results = nil
	s.token++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.notifyChange()
}

// Results returns the current derived result list.
func (s *Searcher) Results() []*entity.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*entity.Contact(nil), s.results...)
}

// Display implements the result display policy: the full (query-unfiltered)
// contact list when the query is empty, the derived search results otherwise.
func (s *Searcher) Display() []*entity.Contact {
	s.mu.Lock()
	query := s.query
	filters := s.filters
	results := append([]*entity.Contact(nil), s.results...)
	s.mu.Unlock()

	if strings.TrimSpace(query) == "" {
		return s.engine.Search(s.st.Contacts(), Query{
			GroupIDs:      filters.GroupIDs,
			FavoritesOnly: filters.FavoritesOnly,
		})
	}

	return results
}

// Close releases the store subscription and stops any pending timer.
func (s *Searcher) Close() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.token++
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// recomputeLocked supersedes any in-flight computation and recomputes
// synchronously with the current query and filters. Callers must hold the
// lock; it is released on return.
func (s *Searcher) recomputeLocked() {
	s.token++
	s.computeLocked(s.token)
}

// computeLocked runs the search for the given token and publishes the results
// only if the token is still current. Callers must hold the lock; it is
// released on return.
func (s *Searcher) computeLocked(tok uint64) {
	if tok != s.token {
		s.mu.Unlock()

		return
	}
	q := Query{
		Text:          s.query,
		GroupIDs:      s.filters.GroupIDs,
		FavoritesOnly: s.filters.FavoritesOnly,
	}
	s.mu.Unlock()

	// Read the store and rank outside the lock; a concurrent SetQuery bumps
	// the token and invalidates this computation below.
	results := s.engine.Search(s.st.Contacts(), q)

	s.mu.Lock()
	if tok != s.token {
		s.mu.Unlock()

		return
	}
	s.results = results
	s.mu.Unlock()
	s.notifyChange()
}

func (s *Searcher) notifyChange() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}
