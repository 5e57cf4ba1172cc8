// Package gateway bridges the client-side entity store to the remote contacts
// API. Every operation follows the same pattern: mark the store as loading and
// clear the previous error, perform the remote call, then write the server's
// representation through to the store.
//
// Failure semantics follow the read/write split: fetch failures are recorded
// on the store and swallowed, since no user action is waiting on them;
// mutation failures are recorded and also returned so the caller can abort
// its own workflow.
package gateway

import (
	"context"
	"time"

	"rolodex/internal/domain/entity"
	"rolodex/internal/store"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// RemoteAPI is the persistence boundary the gateway talks to. The HTTP
// implementation lives in internal/infra/api.
type RemoteAPI interface {
	ListContacts(ctx context.Context) ([]*entity.Contact, error)
	GetContact(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
	CreateContact(ctx context.Context, contact *entity.Contact) (*entity.Contact, error)
	UpdateContact(ctx context.Context, id uuid.UUID, patch *entity.ContactPatch) (*entity.Contact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
	BulkDeleteContacts(ctx context.Context, ids []uuid.UUID) error
	ListGroups(ctx context.Context) ([]*entity.Group, error)
	CreateGroup(ctx context.Context, group *entity.Group) (*entity.Group, error)
	UpdateGroup(ctx context.Context, id uuid.UUID, patch *entity.GroupPatch) (*entity.Group, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error
}

// ContactInput carries the caller-provided fields for a new contact. The
// gateway assigns the identifier and timestamps.
type ContactInput struct {
	FirstName    string
	LastName     string
	MiddleName   string
	PhoneNumbers []entity.PhoneNumber
	Emails       []entity.EmailAddress
	Address      *entity.PostalAddress
	Company      string
	Notes        string
	AvatarURL    string
	GroupIDs     []uuid.UUID
	IsFavorite   bool
}

// GroupInput carries the caller-provided fields for a new group.
type GroupInput struct {
	Name  string
	Color string
	Icon  string
}

// Gateway wraps the remote API and writes results into the store.
type Gateway struct {
	api RemoteAPI
	st  *store.Store
}

// New constructs a gateway over the given remote API and store.
func New(api RemoteAPI, st *store.Store) *Gateway {
	return &Gateway{
		api: api,
		st:  st,
	}
}

// Bootstrap loads contacts and groups concurrently, e.g. at application
// start. Like all fetches, failures are recorded on the store and swallowed;
// the first failure cancels the sibling fetch.
func (g *Gateway) Bootstrap(ctx context.Context) {
	g.st.SetLoading(true)
	g.st.ClearError()
	defer g.st.SetLoading(false)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		contacts, err := g.api.ListContacts(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to load contacts")
		}
		g.st.SetAll(contacts)

		return nil
	})
	eg.Go(func() error {
		groups, err := g.api.ListGroups(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to load groups")
		}
		g.st.SetGroups(groups)

		return nil
	})

	if err := eg.Wait(); err != nil {
		g.st.SetError(err.Error())
	}
}

// FetchContacts lists all contacts and replaces the store's contact map.
func (g *Gateway) FetchContacts(ctx context.Context) {
	g.st.SetLoading(true)
	g.st.ClearError()
	defer g.st.SetLoading(false)

	contacts, err := g.api.ListContacts(ctx)
	if err != nil {
		g.st.SetError(errors.Wrap(err, "failed to load contacts").Error())

		return
	}
	g.st.SetAll(contacts)
}

// FetchGroups lists all groups and replaces the store's group map.
func (g *Gateway) FetchGroups(ctx context.Context) {
	g.st.SetLoading(true)
	g.st.ClearError()
	defer g.st.SetLoading(false)

	groups, err := g.api.ListGroups(ctx)
	if err != nil {
		g.st.SetError(errors.Wrap(err, "failed to load groups").Error())

		return
	}
	g.st.SetGroups(groups)
}

// CreateContact assigns a fresh identifier and timestamps, sends the create
// request and upserts the server's returned representation. The server is the
// source of truth for the final stored shape.
func (g *Gateway) CreateContact(ctx context.Context, input *ContactInput) (*entity.Contact, error) {
	g.st.SetLoading(true)
	g.st.ClearError()
	defer g.st.SetLoading(false)

	now := time.Now()
	contact := &entity.Contact{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		MiddleName:   input.MiddleName,
		PhoneNumbers: input.PhoneNumbers,
		Emails:       input.Emails,
		Address:      input.Address,
		Company:      input.Company,
		Notes:        input.Notes,
		AvatarURL:    input.AvatarURL,
		GroupIDs:     input.GroupIDs,
		IsFavorite:   input.IsFavorite,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := g.api.CreateContact(ctx, contact)
	if err != nil {
		err = errors.Wrap(err, "failed to create contact")
		g.st.SetError(err.Error())

		return nil, err
	}
	g.st.Upsert(created)

	return created, nil
}

// SaveContact sends a partial update and applies the server's returned fields
// to the stored contact.
func (g *Gateway) SaveContact(ctx context.Context, id uuid.UUID, patch *entity.ContactPatch) (*entity.Contact, error) {
	g.st.SetLoading(true)
	g.st.ClearError()
	defer g.st.SetLoading(false)

	updated, err := g.api.UpdateContact(ctx, id, patch)
	if err != nil {
		err = errors.Wrap(err, "failed to save contact")
		g.st.SetError(err.Error())

		return nil, err
	}
	g.st.Update(id, patchFromContact(updated))

	return updated, nil
}

// RemoveContact sends the delete request and removes the contact locally.
func (g *Gateway) RemoveContact(ctx context.Context, id uuid.UUID) error {
	g.st.SetLoading(true)
	g.st.ClearError()
	defer g.st.SetLoading(false)

	if err := g.api.DeleteContact(ctx, id); err != nil {
		err = errors.Wrap(err, "failed to delete contact")
		g.st.SetError(err.Error())

		return err
	}
	g.st.Remove(id)

	return nil
}

// BulkRemoveContacts deletes multiple contacts in one request and removes
// them locally.
func (g *Gateway) BulkRemoveContacts(ctx context.Context, ids []uuid.UUID) error {
	g.st.SetLoading(true)
	g.st.ClearError()
	defer g.st.SetLoading(false)

	if err := g.api.BulkDeleteContacts(ctx, ids); err != nil {
		err = errors.Wrap(err, "failed to delete contacts")
		g.st.SetError(err.Error())

		return err
	}
	for _, id := range ids {
		g.st.Remove(id)
	}

	return nil
}

// CreateGroup assigns a fresh identifier and timestamps, sends the create
// request and adds the server's returned representation.
func (g *Gateway) CreateGroup(ctx context.Context, input *GroupInput) (*entity.Group, error) {
	g.st.SetLoading(true)
	g.st.ClearError()
	defer g.st.SetLoading(false)

	now := time.Now()
	group := &entity.Group{
		ID:        uuid.New(),
		Name:      input.Name,
		Color:     input.Color,
		Icon:      input.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := g.api.CreateGroup(ctx, group)
	if err != nil {
		err = errors.Wrap(err, "failed to create group")
		g.st.SetError(err.Error())

		return nil, err
	}
	g.st.AddGroup(created)

	return created, nil
}

// SaveGroup sends a partial update and applies the server's returned fields.
func (g *Gateway) SaveGroup(ctx context.Context, id uuid.UUID, patch *entity.GroupPatch) (*entity.Group, error) {
	g.st.SetLoading(true)
	g.st.ClearError()
	defer g.st.SetLoading(false)

	updated, err := g.api.UpdateGroup(ctx, id, patch)
	if err != nil {
		err = errors.Wrap(err, "failed to save group")
		g.st.SetError(err.Error())

		return nil, err
	}
	g.st.UpdateGroup(id, &entity.GroupPatch{
		Name:  &updated.Name,
		Color: &updated.Color,
		Icon:  &updated.Icon,
	})

	return updated, nil
}

// RemoveGroup sends the delete request, removes the group locally and purges
// the membership from every stored contact.
func (g *Gateway) RemoveGroup(ctx context.Context, id uuid.UUID) error {
	g.st.SetLoading(true)
	g.st.ClearError()
	defer g.st.SetLoading(false)

	if err := g.api.DeleteGroup(ctx, id); err != nil {
		err = errors.Wrap(err, "failed to delete group")
		g.st.SetError(err.Error())

		return err
	}
	g.st.RemoveGroup(id)

	return nil
}

// patchFromContact converts a full server representation into a patch
// covering every mutable field, so the store's update path reconciles
// favorites exactly as it would for a hand-built partial update.
func patchFromContact(c *entity.Contact) *entity.ContactPatch {
	if c == nil {
		return &entity.ContactPatch{}
	}

	return &entity.ContactPatch{
		FirstName:    &c.FirstName,
		LastName:     &c.LastName,
		MiddleName:   &c.MiddleName,
		PhoneNumbers: &c.PhoneNumbers,
		Emails:       &c.Emails,
		Address:      c.Address,
		Company:      &c.Company,
		Notes:        &c.Notes,
		AvatarURL:    &c.AvatarURL,
		GroupIDs:     &c.GroupIDs,
		IsFavorite:   &c.IsFavorite,
	}
}
