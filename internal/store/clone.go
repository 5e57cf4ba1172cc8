package store

import (
	"sort"

	"rolodex/internal/domain/entity"

	"github.com/google/uuid"
)

// cloneContact deep-copies a contact so the store never shares mutable state
// with its callers.
func cloneContact(c *entity.Contact) *entity.Contact {
	if c == nil {
		return nil
	}

	cc := *c
	if c.PhoneNumbers != nil {
		cc.PhoneNumbers = make([]entity.PhoneNumber, len(c.PhoneNumbers))
		copy(cc.PhoneNumbers, c.PhoneNumbers)
	}
	if c.Emails != nil {
		cc.Emails = make([]entity.EmailAddress, len(c.Emails))
		copy(cc.Emails, c.Emails)
	}
	if c.GroupIDs != nil {
		cc.GroupIDs = make([]uuid.UUID, len(c.GroupIDs))
		copy(cc.GroupIDs, c.GroupIDs)
	}
	if c.Address != nil {
		addr := *c.Address
		cc.Address = &addr
	}

	return &cc
}

func cloneGroup(g *entity.Group) *entity.Group {
	if g == nil {
		return nil
	}

	gg := *g

	return &gg
}

// dedupeIDs drops repeated identifiers while preserving first-seen order.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) < 2 {
		return ids
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, cur := range ids {
		if cur != id {
			out = append(out, cur)
		}
	}

	return out
}

// sortContactsBySurname orders contacts by surname ascending using ordinal,
// case-sensitive comparison, with first name as tiebreaker.
func sortContactsBySurname(contacts []*entity.Contact) {
	sort.SliceStable(contacts, func(i, j int) bool {
		if contacts[i].LastName != contacts[j].LastName {
			return contacts[i].LastName < contacts[j].LastName
		}

		return contacts[i].FirstName < contacts[j].FirstName
	})
}

func sortGroupsByName(groups []*entity.Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})
}
