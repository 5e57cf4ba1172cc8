package search

import (
	"testing"

	"rolodex/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContact(first, last string) *entity.Contact {
	return &entity.Contact{
		ID:        uuid.New(),
		FirstName: first,
		LastName:  last,
	}
}

func defaultEngine() *Engine {
	return NewEngine(0, 0, Weights{})
}

func TestEngine_EmptyInputReturnsEmpty(t *testing.T) {
	e := defaultEngine()

	assert.Empty(t, e.Search(nil, Query{}))
	assert.Empty(t, e.Search(nil, Query{Text: "john"}))
	assert.Empty(t, e.Search([]*entity.Contact{}, Query{Text: "john", FavoritesOnly: true}))
}

func TestEngine_EmptyQuerySortsBySurname(t *testing.T) {
	e := defaultEngine()
	contacts := []*entity.Contact{
		testContact("Grace", "Hopper"),
		testContact("Ada", "Lovelace"),
		testContact("Charles", "Babbage"),
	}

	got := e.Search(contacts, Query{})
	require.Len(t, got, 3)
	assert.Equal(t, "Babbage", got[0].LastName)
	assert.Equal(t, "Hopper", got[1].LastName)
	assert.Equal(t, "Lovelace", got[2].LastName)
}

func TestEngine_FuzzyRanksMatchingContactFirst(t *testing.T) {
	e := defaultEngine()
	john := testContact("John", "Doe")
	jane := testContact("Jane", "Smith")

	got := e.Search([]*entity.Contact{jane, john}, Query{Text: "john"})

	require.NotEmpty(t, got)
	assert.Equal(t, john.ID, got[0].ID)
	// "Jane Smith" has no 'o' between 'j' and 'h'-'n', so it cannot fuzzy-match.
	for _, c := range got {
		assert.NotEqual(t, jane.ID, c.ID, "non-matching contact must be excluded")
	}
}

func TestEngine_MatchesPhoneAndEmail(t *testing.T) {
	e := defaultEngine()
	c := testContact("Ada", "Lovelace")
	c.PhoneNumbers = []entity.PhoneNumber{{ID: uuid.New(), Number: "555-0187", Type: entity.PhoneTypeMobile}}
	c.Emails = []entity.EmailAddress{{ID: uuid.New(), Address: "ada@analytical.example", Type: entity.EmailTypeWork}}
	other := testContact("Grace", "Hopper")

	byPhone := e.Search([]*entity.Contact{c, other}, Query{Text: "5550187"})
	require.Len(t, byPhone, 1)
	assert.Equal(t, c.ID, byPhone[0].ID)

	byEmail := e.Search([]*entity.Contact{c, other}, Query{Text: "analytical"})
	require.Len(t, byEmail, 1)
	assert.Equal(t, c.ID, byEmail[0].ID)
}

func TestEngine_NameOutweighsCompany(t *testing.T) {
	e := defaultEngine()
	byName := testContact("Smith", "Anderson")
	byCompany := testContact("Ada", "Lovelace")
	byCompany.Company = "Smith Industries"

	got := e.Search([]*entity.Contact{byCompany, byName}, Query{Text: "smith"})

	require.Len(t, got, 2)
	assert.Equal(t, byName.ID, got[0].ID, "a name match must outrank a company match")
}

func TestEngine_GroupFilter(t *testing.T) {
	e := defaultEngine()
	g1 := uuid.New()
	g2 := uuid.New()

	inG1 := testContact("Ada", "Lovelace")
	inG1.GroupIDs = []uuid.UUID{g1}
	inG2 := testContact("Grace", "Hopper")
	inG2.GroupIDs = []uuid.UUID{g2}
	inNone := testContact("Charles", "Babbage")

	got := e.Search([]*entity.Contact{inG1, inG2, inNone}, Query{GroupIDs: []uuid.UUID{g1}})
	require.Len(t, got, 1)
	assert.Equal(t, inG1.ID, got[0].ID)

	// Membership in any group of the set is enough.
	got = e.Search([]*entity.Contact{inG1, inG2, inNone}, Query{GroupIDs: []uuid.UUID{g1, g2}})
	assert.Len(t, got, 2)
}

func TestEngine_FavoritesFilter(t *testing.T) {
	e := defaultEngine()
	fav := testContact("Ada", "Lovelace")
	fav.IsFavorite = true
	plain := testContact("Grace", "Hopper")

	got := e.Search([]*entity.Contact{fav, plain}, Query{FavoritesOnly: true})
	require.Len(t, got, 1)
	assert.Equal(t, fav.ID, got[0].ID)
}

func TestEngine_FiltersComposeWithQuery(t *testing.T) {
	e := defaultEngine()
	g := uuid.New()

	match := testContact("John", "Doe")
	match.GroupIDs = []uuid.UUID{g}
	wrongGroup := testContact("John", "Dorian")
	wrongName := testContact("Jane", "Smith")
	wrongName.GroupIDs = []uuid.UUID{g}

	got := e.Search([]*entity.Contact{match, wrongGroup, wrongName}, Query{
		Text:     "john",
		GroupIDs: []uuid.UUID{g},
	})

	require.Len(t, got, 1)
	assert.Equal(t, match.ID, got[0].ID)
}

func TestEngine_Paging(t *testing.T) {
	e := defaultEngine()
	contacts := []*entity.Contact{
		testContact("A", "Alpha"),
		testContact("B", "Bravo"),
		testContact("C", "Charlie"),
		testContact("D", "Delta"),
	}

	page := e.Search(contacts, Query{Limit: 2})
	require.Len(t, page, 2)
	assert.Equal(t, "Alpha", page[0].LastName)

	page = e.Search(contacts, Query{Limit: 2, Offset: 2})
	require.Len(t, page, 2)
	assert.Equal(t, "Charlie", page[0].LastName)

	assert.Empty(t, e.Search(contacts, Query{Limit: 2, Offset: 10}))
}

func TestEngine_DefaultPageSizeTruncates(t *testing.T) {
	e := defaultEngine()
	contacts := make([]*entity.Contact, 0, DefaultPageSize+10)
	for i := 0; i < DefaultPageSize+10; i++ {
		contacts = append(contacts, testContact("First", "Last"))
	}

	got := e.Search(contacts, Query{})
	assert.Len(t, got, DefaultPageSize)
}

func TestEngine_QueryTextTrimmedOnlyForEmptiness(t *testing.T) {
	e := defaultEngine()
	john := testContact("John", "Doe")

	// Whitespace-only query behaves as the empty query: sorted listing.
	got := e.Search([]*entity.Contact{john}, Query{Text: "   "})
	require.Len(t, got, 1)

	// Surrounding whitespace does not break matching.
	got = e.Search([]*entity.Contact{john}, Query{Text: " john "})
	require.Len(t, got, 1)
	assert.Equal(t, john.ID, got[0].ID)
}
