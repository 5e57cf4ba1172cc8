// Package store implements the client-side source of truth for contacts and
// groups: a normalized, observable in-memory map pair with a derived favorites
// index kept consistent on every mutation path.
package store

import (
	"sync"

	"rolodex/internal/domain/entity"

	"github.com/google/uuid"
)

// Snapshot is a consistent view of the store handed to subscribers and
// returned by read accessors. Slices are copies; mutating them does not
// affect the store.
type Snapshot struct {
	Contacts  []*entity.Contact // All contacts, ordered by surname ascending.
	Groups    []*entity.Group   // All groups, ordered by name ascending.
	Favorites []uuid.UUID       // Identifiers of favorite contacts, in reconciliation order.
	Loading   bool              // True while a gateway call is in flight.
	Err       string            // Last recorded error message, empty when none.
}

// Subscriber receives a consistent snapshot after every completed mutation.
type Subscriber func(Snapshot)

// Store holds normalized contacts and groups keyed by identifier. All
// mutations are atomic with respect to observers: the contact map and the
// favorites list change under one lock, and subscribers only ever see the
// state before or after a mutation, never in between.
//
// The store performs no I/O and never fails; mutations against unknown
// identifiers are silently ignored so UI call sites stay simple.
type Store struct {
	mu          sync.Mutex
	contacts    map[uuid.UUID]*entity.Contact
	groups      map[uuid.UUID]*entity.Group
	favorites   []uuid.UUID
	loading     bool
	lastErr     string
	subscribers map[int]Subscriber
	nextSubID   int
}

// New constructs an empty store. The store is intended to be built once at
// application start and passed to consumers explicitly; Reset exists for test
// isolation and "clear all data".
func New() *Store {
	return &Store{
		contacts:    make(map[uuid.UUID]*entity.Contact),
		groups:      make(map[uuid.UUID]*entity.Group),
		subscribers: make(map[int]Subscriber),
	}
}

// Subscribe registers fn to be called synchronously after every mutation.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// SetAll replaces the entire contact map and rebuilds the favorites list from
// the given contacts. Duplicate identifiers in the input follow last-write-wins
// semantics. An empty input simply clears the contacts.
func (s *Store) SetAll(contacts []*entity.Contact) {
	s.mu.Lock()
	s.contacts = make(map[uuid.UUID]*entity.Contact, len(contacts))
	s.favorites = nil
	for _, c := range contacts {
		cc := cloneContact(c)
		cc.GroupIDs = dedupeIDs(cc.GroupIDs)
		s.contacts[cc.ID] = cc
		s.reconcileFavoriteLocked(cc)
	}
	s.notifyLocked()
}

// Upsert inserts or overwrites the contact at its identifier and reconciles
// the favorites list in both directions.
func (s *Store) Upsert(contact *entity.Contact) {
	if contact == nil {
		return
	}

	s.mu.Lock()
	cc := cloneContact(contact)
	cc.GroupIDs = dedupeIDs(cc.GroupIDs)
	s.contacts[cc.ID] = cc
	s.reconcileFavoriteLocked(cc)
	s.notifyLocked()
}

// Update merges the patch into the contact at id. Unknown identifiers are a
// silent no-op: no error, no state change, no notification.
func (s *Store) Update(id uuid.UUID, patch *entity.ContactPatch) {
	s.mu.Lock()
	c, ok := s.contacts[id]
	if !ok {
		s.mu.Unlock()

		return
	}
	patch.Apply(c)
	// Applying the patch installs the caller's slice headers and address
	// pointer; re-clone so the store never shares mutable state.
	cc := cloneContact(c)
	cc.GroupIDs = dedupeIDs(cc.GroupIDs)
	s.contacts[id] = cc
	s.reconcileFavoriteLocked(cc)
	s.notifyLocked()
}

// Remove deletes the contact and purges its identifier from the favorites
// list. Unknown identifiers are a silent no-op.
func (s *Store) Remove(id uuid.UUID) {
	s.mu.Lock()
	if _, ok := s.contacts[id]; !ok {
		s.mu.Unlock()

		return
	}
	delete(s.contacts, id)
	s.removeFavoriteLocked(id)
	s.notifyLocked()
}

// ToggleFavorite flips the favorite flag on the contact at id and reconciles
// the favorites list. Unknown identifiers are a silent no-op.
func (s *Store) ToggleFavorite(id uuid.UUID) {
	s.mu.Lock()
	c, ok := s.contacts[id]
	if !ok {
		s.mu.Unlock()

		return
	}
	c.IsFavorite = !c.IsFavorite
	s.reconcileFavoriteLocked(c)
	s.notifyLocked()
}

// SetGroups replaces the entire group map.
func (s *Store) SetGroups(groups []*entity.Group) {
	s.mu.Lock()
	s.groups = make(map[uuid.UUID]*entity.Group, len(groups))
	for _, g := range groups {
		gg := cloneGroup(g)
		s.groups[gg.ID] = gg
	}
	s.notifyLocked()
}

// AddGroup inserts or overwrites the group at its identifier.
func (s *Store) AddGroup(group *entity.Group) {
	if group == nil {
		return
	}

	s.mu.Lock()
	gg := cloneGroup(group)
	s.groups[gg.ID] = gg
	s.notifyLocked()
}

// UpdateGroup merges the patch into the group at id. Unknown identifiers are
// a silent no-op.
func (s *Store) UpdateGroup(id uuid.UUID, patch *entity.GroupPatch) {
	s.mu.Lock()
	g, ok := s.groups[id]
	if !ok {
		s.mu.Unlock()

		return
	}
	patch.Apply(g)
	s.notifyLocked()
}

// RemoveGroup deletes the group and removes its identifier from every
// contact's membership list. Unknown identifiers still purge memberships, so
// a group deleted remotely but never fetched cannot linger on contacts.
func (s *Store) RemoveGroup(id uuid.UUID) {
	s.mu.Lock()
	delete(s.groups, id)
	for _, c := range s.contacts {
		c.GroupIDs = removeID(c.GroupIDs, id)
	}
	s.notifyLocked()
}

// Reset restores the documented empty initial state: empty maps, empty
// favorites, loading off, no error.
func (s *Store) Reset() {
	s.mu.Lock()
	s.contacts = make(map[uuid.UUID]*entity.Contact)
	s.groups = make(map[uuid.UUID]*entity.Group)
	s.favorites = nil
	s.loading = false
	s.lastErr = ""
	s.notifyLocked()
}

// SetLoading records whether a gateway call is in flight.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.notifyLocked()
}

// SetError records a human-readable error message for display.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.notifyLocked()
}

// ClearError discards the recorded error message.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.notifyLocked()
}

// Contact returns a copy of the contact at id.
func (s *Store) Contact(id uuid.UUID) (*entity.Contact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contacts[id]
	if !ok {
		return nil, false
	}

	return cloneContact(c), true
}

// Contacts returns all contacts ordered by surname ascending.
func (s *Store) Contacts() []*entity.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.contactsLocked()
}

// Group returns a copy of the group at id.
func (s *Store) Group(id uuid.UUID) (*entity.Group, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[id]
	if !ok {
		return nil, false
	}

	return cloneGroup(g), true
}

// Groups returns all groups ordered by name ascending.
func (s *Store) Groups() []*entity.Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.groupsLocked()
}

// Favorites returns the identifiers of favorite contacts.
func (s *Store) Favorites() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]uuid.UUID, len(s.favorites))
	copy(out, s.favorites)

	return out
}

// Loading reports whether a gateway call is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}

// Err returns the last recorded error message, empty when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastErr
}

// Snapshot returns a consistent view of the whole store.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// notifyLocked takes a snapshot and the subscriber list under the lock,
// releases it, then invokes every subscriber. Callers must hold the lock and
// must not touch state afterwards.
func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	subs := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	favorites := make([]uuid.UUID, len(s.favorites))
	copy(favorites, s.favorites)

	return Snapshot{
		Contacts:  s.contactsLocked(),
		Groups:    s.groupsLocked(),
		Favorites: favorites,
		Loading:   s.loading,
		Err:       s.lastErr,
	}
}

func (s *Store) contactsLocked() []*entity.Contact {
	out := make([]*entity.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, cloneContact(c))
	}
	sortContactsBySurname(out)

	return out
}

func (s *Store) groupsLocked() []*entity.Group {
	out := make([]*entity.Group, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, cloneGroup(g))
	}
	sortGroupsByName(out)

	return out
}

// reconcileFavoriteLocked makes the favorites list agree with the contact's
// flag: present exactly once when favorite, absent otherwise.
func (s *Store) reconcileFavoriteLocked(c *entity.Contact) {
	if c.IsFavorite {
		s.addFavoriteLocked(c.ID)
	} else {
		s.removeFavoriteLocked(c.ID)
	}
}

func (s *Store) addFavoriteLocked(id uuid.UUID) {
	for _, fav := range s.favorites {
		if fav == id {
			return
		}
	}
	s.favorites = append(s.favorites, id)
}

func (s *Store) removeFavoriteLocked(id uuid.UUID) {
	s.favorites = removeID(s.favorites, id)
}
