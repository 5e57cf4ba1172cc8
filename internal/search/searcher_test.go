package search

import (
	"testing"
	"time"

	"rolodex/internal/domain/entity"
	"rolodex/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) *store.Store {
	t.Helper()

	st := store.New()
	st.SetAll([]*entity.Contact{
		{ID: uuid.New(), FirstName: "John", LastName: "Doe"},
		{ID: uuid.New(), FirstName: "Jane", LastName: "Smith", IsFavorite: true},
		{ID: uuid.New(), FirstName: "Grace", LastName: "Hopper"},
	})

	return st
}

func newTestSearcher(t *testing.T, st *store.Store, debounce time.Duration) *Searcher {
	t.Helper()

	s := NewSearcher(st, NewEngine(0, 0, Weights{}), debounce)
	t.Cleanup(s.Close)

	return s
}

func TestSearcher_SetQueryComputesResults(t *testing.T) {
	st := seedStore(t)
	s := newTestSearcher(t, st, 0)

	s.SetQuery("john")

	results := s.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "Doe", results[0].LastName)
	assert.Equal(t, "john", s.Query())
}

func TestSearcher_QueryStoredVerbatim(t *testing.T) {
	st := seedStore(t)
	s := newTestSearcher(t, st, 0)

	s.SetQuery("  john  ")

	assert.Equal(t, "  john  ", s.Query(), "query text must not be trimmed on store")
}

func TestSearcher_StoreMutationRecomputes(t *testing.T) {
	st := seedStore(t)
	s := newTestSearcher(t, st, 0)

	s.SetQuery("johanna")
	assert.Empty(t, s.Results())

	st.Upsert(&entity.Contact{ID: uuid.New(), FirstName: "Johanna", LastName: "Larsson"})

	results := s.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "Larsson", results[0].LastName)
}

func TestSearcher_FavoritesFilterRecomputesImmediately(t *testing.T) {
	st := seedStore(t)
	s := newTestSearcher(t, st, 0)

	s.ToggleFavoritesFilter()

	display := s.Display()
	require.Len(t, display, 1)
	assert.Equal(t, "Smith", display[0].LastName)

	s.ToggleFavoritesFilter()
	assert.Len(t, s.Display(), 3)
}

func TestSearcher_GroupFilterAddRemove(t *testing.T) {
	st := store.New()
	g := uuid.New()
	in := &entity.Contact{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace", GroupIDs: []uuid.UUID{g}}
	out := &entity.Contact{ID: uuid.New(), FirstName: "Grace", LastName: "Hopper"}
	st.SetAll([]*entity.Contact{in, out})
	s := newTestSearcher(t, st, 0)

	s.AddGroupFilter(g)
	display := s.Display()
	require.Len(t, display, 1)
	assert.Equal(t, in.ID, display[0].ID)

	s.RemoveGroupFilter(g)
	assert.Len(t, s.Display(), 2)
}

func TestSearcher_ClearSearchResetsEverything(t *testing.T) {
	st := seedStore(t)
	s := newTestSearcher(t, st, 0)

	s.SetQuery("john")
	s.ToggleFavoritesFilter()
	s.AddGroupFilter(uuid.New())

	s.ClearSearch()

	assert.Empty(t, s.Query())
	assert.Empty(t, s.Results())
	f := s.Filters()
	assert.Empty(t, f.GroupIDs)
	assert.False(t, f.FavoritesOnly)
	assert.Len(t, s.Display(), 3, "empty query displays the full list")
}

func TestSearcher_DisplaySelectsListOrResults(t *testing.T) {
	st := seedStore(t)
	s := newTestSearcher(t, st, 0)

	// Empty query: full list, surname ascending.
	display := s.Display()
	require.Len(t, display, 3)
	assert.Equal(t, "Doe", display[0].LastName)

	// Non-empty query: ranked results.
	s.SetQuery("grace")
	display = s.Display()
	require.Len(t, display, 1)
	assert.Equal(t, "Hopper", display[0].LastName)
}

func TestSearcher_DebounceCoalescesRapidQueries(t *testing.T) {
	st := seedStore(t)
	s := newTestSearcher(t, st, 20*time.Millisecond)

	s.SetQuery("j")
	s.SetQuery("jo")
	s.SetQuery("john")

	// Inside the window nothing has been computed yet.
	assert.Empty(t, s.Results())

	assert.Eventually(t, func() bool {
		results := s.Results()

		return len(results) == 1 && results[0].LastName == "Doe"
	}, time.Second, 5*time.Millisecond)

	// Only the final query's text survives.
	assert.Equal(t, "john", s.Query())
}

func TestSearcher_StaleComputationDiscarded(t *testing.T) {
	st := seedStore(t)
	s := newTestSearcher(t, st, 10*time.Millisecond)

	s.SetQuery("grace")
	// Supersede before the first debounce window elapses.
	time.Sleep(2 * time.Millisecond)
	s.SetQuery("john")

	assert.Eventually(t, func() bool {
		results := s.Results()

		return len(results) == 1 && results[0].LastName == "Doe"
	}, time.Second, 5*time.Millisecond)

	// Give the superseded computation every chance to fire; it must not win.
	time.Sleep(30 * time.Millisecond)
	results := s.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "Doe", results[0].LastName)
}

func TestSearcher_OnChangeFires(t *testing.T) {
	st := seedStore(t)
	s := newTestSearcher(t, st, 0)

	changes := 0
	s.OnChange(func() { changes++ })

	s.SetQuery("john")
	assert.Equal(t, 1, changes)

	s.ToggleFavoritesFilter()
	assert.Equal(t, 2, changes)
}
