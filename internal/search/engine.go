// Package search implements the query/filter layer: structured filtering and
// weighted fuzzy ranking over the contact list, plus a debounced, stale-safe
// searcher bound to the entity store.
package search

import (
	"sort"
	"strings"

	"rolodex/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
)

// DefaultPageSize bounds result lists when the caller does not specify a limit.
const DefaultPageSize = 50

// Weights holds the per-field multipliers applied to raw fuzzy match scores.
// Names dominate, phone numbers and emails rank in the middle, company last.
type Weights struct {
	Name    int
	Phone   int
	Email   int
	Company int
}

// DefaultWeights are used wherever a weight is left at zero.
var DefaultWeights = Weights{Name: 10, Phone: 5, Email: 5, Company: 2}

// Query describes one search invocation: free text, structured filters and
// result paging.
type Query struct {
	Text          string      // Raw query text, stored verbatim; trimmed only for the empty check.
	GroupIDs      []uuid.UUID // When non-empty, retain contacts with at least one membership in the set.
	FavoritesOnly bool        // When set, retain only favorite contacts.
	Limit         int         // Page size; 0 means the engine's configured page size.
	Offset        int         // Result offset, default 0.
}

// Engine performs pure, synchronous filtering and ranking. It holds no state
// beyond its configuration and is safe for concurrent use.
type Engine struct {
	pageSize int
	minScore int
	weights  Weights
}

// NewEngine builds an engine. Zero arguments fall back to defaults, so
// NewEngine(0, 0, Weights{}) is a fully usable default configuration.
func NewEngine(pageSize, minScore int, weights Weights) *Engine {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if weights.Name <= 0 {
		weights.Name = DefaultWeights.Name
	}
	if weights.Phone <= 0 {
		weights.Phone = DefaultWeights.Phone
	}
	if weights.Email <= 0 {
		weights.Email = DefaultWeights.Email
	}
	if weights.Company <= 0 {
		weights.Company = DefaultWeights.Company
	}

	return &Engine{
		pageSize: pageSize,
		minScore: minScore,
		weights:  weights,
	}
}

// Search filters the given contacts by group membership and favorites, then
// either sorts by surname (empty query) or ranks by weighted fuzzy match
// quality (non-empty query), truncated to the requested page.
func (e *Engine) Search(contacts []*entity.Contact, q Query) []*entity.Contact {
	filtered := e.filter(contacts, q)
	if len(filtered) == 0 {
		return nil
	}

	text := strings.TrimSpace(q.Text)
	if text == "" {
		sortBySurname(filtered)

		return e.page(filtered, q)
	}

	ranked := e.rank(filtered, text)

	return e.page(ranked, q)
}

func (e *Engine) filter(contacts []*entity.Contact, q Query) []*entity.Contact {
	out := make([]*entity.Contact, 0, len(contacts))
	for _, c := range contacts {
		if len(q.GroupIDs) > 0 && !hasAnyGroup(c, q.GroupIDs) {
			continue
		}
		if q.FavoritesOnly && !c.IsFavorite {
			continue
		}
		out = append(out, c)
	}

	return out
}

type scoredContact struct {
	contact *entity.Contact
	score   int
}

// rank scores every contact against the query and returns matches ordered by
// descending match quality. Contacts with no matching field at all, or whose
// best weighted score falls below the threshold, are excluded.
func (e *Engine) rank(contacts []*entity.Contact, text string) []*entity.Contact {
	scored := make([]scoredContact, 0, len(contacts))
	for _, c := range contacts {
		score, ok := e.scoreContact(c, text)
		if !ok || score < e.minScore {
			continue
		}
		scored = append(scored, scoredContact{contact: c, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}

		return scored[i].contact.LastName < scored[j].contact.LastName
	})

	out := make([]*entity.Contact, len(scored))
	for i, sc := range scored {
		out[i] = sc.contact
	}

	return out
}

// scoreContact returns the best weighted field score for the query, and
// whether any field matched at all.
func (e *Engine) scoreContact(c *entity.Contact, text string) (int, bool) {
	type field struct {
		value  string
		weight int
	}

	fields := []field{
		{c.FirstName, e.weights.Name},
		{c.LastName, e.weights.Name},
		{c.FullName(), e.weights.Name},
		{c.Company, e.weights.Company},
	}
	for _, p := range c.PhoneNumbers {
		fields = append(fields, field{p.Number, e.weights.Phone})
	}
	for _, m := range c.Emails {
		fields = append(fields, field{m.Address, e.weights.Email})
	}

	best := 0
	matched := false
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		matches := fuzzy.Find(text, []string{f.value})
		if len(matches) == 0 {
			continue
		}
		weighted := matches[0].Score * f.weight
		if !matched || weighted > best {
			best = weighted
			matched = true
		}
	}

	return best, matched
}

func (e *Engine) page(contacts []*entity.Contact, q Query) []*entity.Contact {
	limit := q.Limit
	if limit <= 0 {
		limit = e.pageSize
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(contacts) {
		return nil
	}

	end := offset + limit
	if end > len(contacts) {
		end = len(contacts)
	}

	return contacts[offset:end]
}

func hasAnyGroup(c *entity.Contact, groupIDs []uuid.UUID) bool {
	for _, id := range groupIDs {
		if c.HasGroup(id) {
			return true
		}
	}

	return false
}

// sortBySurname orders contacts by surname ascending using ordinal,
// case-sensitive comparison, with first name as tiebreaker.
func sortBySurname(contacts []*entity.Contact) {
	sort.SliceStable(contacts, func(i, j int) bool {
		if contacts[i].LastName != contacts[j].LastName {
			return contacts[i].LastName < contacts[j].LastName
		}

		return contacts[i].FirstName < contacts[j].FirstName
	})
}
