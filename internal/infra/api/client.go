// Package api provides the HTTP implementation of the gateway's RemoteAPI
// boundary, talking to the rolodex server's JSON endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"rolodex/config"
	"rolodex/internal/domain/entity"
	"rolodex/internal/gateway"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// envelope mirrors the server's unified response structure.
type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *errorInfo      `json:"error,omitempty"`
}

type errorInfo struct {
	Code    string `json:"code"`
	Details string `json:"details"`
}

// Client is an HTTP RemoteAPI backed by the rolodex server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a client from the remote API configuration.
func NewClient(cfg *config.RemoteAPIConfig, logger *slog.Logger) gateway.RemoteAPI {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// ListContacts fetches every contact from the server.
func (c *Client) ListContacts(ctx context.Context) ([]*entity.Contact, error) {
	var contacts []*entity.Contact
	if err := c.do(ctx, http.MethodGet, "/api/contacts", nil, &contacts); err != nil {
		return nil, err
	}

	return contacts, nil
}

// GetContact fetches a single contact by identifier.
func (c *Client) GetContact(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	var contact entity.Contact
	if err := c.do(ctx, http.MethodGet, "/api/contacts/"+id.String(), nil, &contact); err != nil {
		return nil, err
	}

	return &contact, nil
}

// CreateContact sends a new contact and returns the server's representation.
func (c *Client) CreateContact(ctx context.Context, contact *entity.Contact) (*entity.Contact, error) {
	var created entity.Contact
	if err := c.do(ctx, http.MethodPost, "/api/contacts", contact, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateContact sends a partial update and returns the full updated contact.
func (c *Client) UpdateContact(ctx context.Context, id uuid.UUID, patch *entity.ContactPatch) (*entity.Contact, error) {
	var updated entity.Contact
	if err := c.do(ctx, http.MethodPatch, "/api/contacts/"+id.String(), patch, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteContact removes a contact on the server.
func (c *Client) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/contacts/"+id.String(), nil, nil)
}

// BulkDeleteContacts removes multiple contacts in one request.
func (c *Client) BulkDeleteContacts(ctx context.Context, ids []uuid.UUID) error {
	body := struct {
		IDs []uuid.UUID `json:"ids"`
	}{IDs: ids}

	return c.do(ctx, http.MethodPost, "/api/contacts/bulk-delete", body, nil)
}

// ListGroups fetches every group from the server.
func (c *Client) ListGroups(ctx context.Context) ([]*entity.Group, error) {
	var groups []*entity.Group
	if err := c.do(ctx, http.MethodGet, "/api/groups", nil, &groups); err != nil {
		return nil, err
	}

	return groups, nil
}

// CreateGroup sends a new group and returns the server's representation.
func (c *Client) CreateGroup(ctx context.Context, group *entity.Group) (*entity.Group, error) {
	var created entity.Group
	if err := c.do(ctx, http.MethodPost, "/api/groups", group, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateGroup sends a partial update and returns the full updated group.
func (c *Client) UpdateGroup(ctx context.Context, id uuid.UUID, patch *entity.GroupPatch) (*entity.Group, error) {
	var updated entity.Group
	if err := c.do(ctx, http.MethodPatch, "/api/groups/"+id.String(), patch, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteGroup removes a group on the server.
func (c *Client) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/groups/"+id.String(), nil, nil)
}

// SearchContacts asks the server to run the search. The client-side searcher
// does not use this; it exists for thin callers without a local store.
func (c *Client) SearchContacts(ctx context.Context, text string, limit, offset int) ([]*entity.Contact, error) {
	q := url.Values{}
	q.Set("q", text)
	if limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", limit))
	}
	if offset > 0 {
		q.Set("offset", fmt.Sprintf("%d", offset))
	}

	var contacts []*entity.Contact
	if err := c.do(ctx, http.MethodGet, "/api/contacts/search?"+q.Encode(), nil, &contacts); err != nil {
		return nil, err
	}

	return contacts, nil
}

// do performs one request against the server, unwraps the response envelope
// and decodes the data payload into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.WithStack(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.WithStack(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WithStack(err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return errors.Wrapf(err, "server returned non-JSON response with status %d", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		c.logger.Warn("remote API request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("message", env.Message),
		)
		if env.Error != nil && env.Error.Details != "" {
			return errors.Errorf("%s: %s", env.Message, env.Error.Details)
		}
		if env.Message != "" {
			return errors.New(env.Message)
		}

		return errors.Errorf("server returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
