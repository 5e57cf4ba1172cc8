package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rolodex/internal/delivery/http/validator"
	"rolodex/internal/domain/entity"
	"rolodex/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockContactUsecase struct {
	mock.Mock
}

func (m *mockContactUsecase) ListContacts(ctx context.Context) ([]*entity.Contact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Contact), args.Error(1)
}

func (m *mockContactUsecase) GetContact(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *mockContactUsecase) CreateContact(ctx context.Context, input *usecase.CreateContactInput) (*entity.Contact, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *mockContactUsecase) UpdateContact(ctx context.Context, id uuid.UUID, patch *entity.ContactPatch) (*entity.Contact, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *mockContactUsecase) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockContactUsecase) BulkDeleteContacts(ctx context.Context, ids []uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *mockContactUsecase) SearchContacts(ctx context.Context, input *usecase.SearchContactsInput) ([]*entity.Contact, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Contact), args.Error(1)
}

func newTestContext(t *testing.T, method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestContactHandler_ListContacts(t *testing.T) {
	uc := new(mockContactUsecase)
	h := NewContactHandler(uc, slog.New(slog.DiscardHandler))

	uc.On("ListContacts", mock.Anything).Return([]*entity.Contact{
		{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace"},
	}, nil)

	c, rec := newTestContext(t, http.MethodGet, "/api/contacts", "")
	require.NoError(t, h.ListContacts(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lovelace")
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestContactHandler_GetContact_InvalidID(t *testing.T) {
	uc := new(mockContactUsecase)
	h := NewContactHandler(uc, slog.New(slog.DiscardHandler))

	c, rec := newTestContext(t, http.MethodGet, "/api/contacts/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, h.GetContact(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

func TestContactHandler_CreateContact(t *testing.T) {
	uc := new(mockContactUsecase)
	h := NewContactHandler(uc, slog.New(slog.DiscardHandler))

	created := &entity.Contact{ID: uuid.New(), FirstName: "John", LastName: "Doe"}
	uc.On("CreateContact", mock.Anything, mock.MatchedBy(func(in *usecase.CreateContactInput) bool {
		return in.FirstName == "John" && in.LastName == "Doe"
	})).Return(created, nil)

	c, rec := newTestContext(t, http.MethodPost, "/api/contacts",
		`{"first_name":"John","last_name":"Doe"}`)
	require.NoError(t, h.CreateContact(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestContactHandler_CreateContact_ValidationFailure(t *testing.T) {
	uc := new(mockContactUsecase)
	h := NewContactHandler(uc, slog.New(slog.DiscardHandler))

	// Missing required last_name; the usecase must never be called.
	c, _ := newTestContext(t, http.MethodPost, "/api/contacts",
		`{"first_name":"John"}`)
	err := h.CreateContact(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	uc.AssertNotCalled(t, "CreateContact", mock.Anything, mock.Anything)
}

func TestContactHandler_UpdateContact(t *testing.T) {
	uc := new(mockContactUsecase)
	h := NewContactHandler(uc, slog.New(slog.DiscardHandler))
	id := uuid.New()

	updated := &entity.Contact{ID: id, FirstName: "John", LastName: "Doe", Company: "Acme"}
	uc.On("UpdateContact", mock.Anything, id, mock.MatchedBy(func(p *entity.ContactPatch) bool {
		return p.Company != nil && *p.Company == "Acme"
	})).Return(updated, nil)

	c, rec := newTestContext(t, http.MethodPatch, "/api/contacts/"+id.String(),
		`{"company":"Acme"}`)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.UpdateContact(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme")
}

func TestContactHandler_SearchContacts_ParsesQuery(t *testing.T) {
	uc := new(mockContactUsecase)
	h := NewContactHandler(uc, slog.New(slog.DiscardHandler))
	groupID := uuid.New()

	uc.On("SearchContacts", mock.Anything, mock.MatchedBy(func(in *usecase.SearchContactsInput) bool {
		return in.Text == "john" && in.Limit == 5 && in.FavoritesOnly &&
			len(in.GroupIDs) == 1 && in.GroupIDs[0] == groupID
	})).Return([]*entity.Contact{}, nil)

	c, rec := newTestContext(t, http.MethodGet,
		"/api/contacts/search?q=john&limit=5&favorites=true&groups="+groupID.String(), "")
	require.NoError(t, h.SearchContacts(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestContactHandler_BulkDelete_RequiresIDs(t *testing.T) {
	uc := new(mockContactUsecase)
	h := NewContactHandler(uc, slog.New(slog.DiscardHandler))

	c, _ := newTestContext(t, http.MethodPost, "/api/contacts/bulk-delete", `{"ids":[]}`)
	err := h.BulkDeleteContacts(c)
	require.Error(t, err)
	uc.AssertNotCalled(t, "BulkDeleteContacts", mock.Anything, mock.Anything)
}
