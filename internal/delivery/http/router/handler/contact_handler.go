// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"rolodex/internal/delivery/http/response"
	"rolodex/internal/domain/entity"
	"rolodex/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContactHandler holds dependencies for contact-related handlers.
type ContactHandler struct {
	uc     usecase.ContactUsecase
	logger *slog.Logger
}

// NewContactHandler is the constructor for ContactHandler, injected by Fx.
func NewContactHandler(uc usecase.ContactUsecase, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListContacts returns all contacts ordered by surname.
func (h *ContactHandler) ListContacts(c echo.Context) error {
	contacts, err := h.uc.ListContacts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, contacts, "")
}

// GetContact returns a single contact by its identifier.
func (h *ContactHandler) GetContact(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid contact id")
	}

	contact, err := h.uc.GetContact(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, contact, "")
}

// CreateContact handles the contact creation request.
func (h *ContactHandler) CreateContact(c echo.Context) error {
	var input *usecase.CreateContactInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	contact, err := h.uc.CreateContact(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, contact, "Contact created successfully")
}

// UpdateContact handles a partial contact update.
func (h *ContactHandler) UpdateContact(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid contact id")
	}

	var patch *entity.ContactPatch
	if err := c.Bind(&patch); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact patch")
	}

	contact, err := h.uc.UpdateContact(c.Request().Context(), id, patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, contact, "Contact updated successfully")
}

// DeleteContact removes a contact.
func (h *ContactHandler) DeleteContact(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid contact id")
	}

	if err := h.uc.DeleteContact(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Contact deleted successfully")
}

// bulkDeleteRequest is the body of a bulk delete request.
type bulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

// BulkDeleteContacts removes multiple contacts in one request.
func (h *ContactHandler) BulkDeleteContacts(c echo.Context) error {
	var req *bulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid bulk delete input")
	}
	if err := c.Validate(req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.BulkDeleteContacts(c.Request().Context(), req.IDs); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Contacts deleted successfully")
}

// SearchContacts runs a ranked fuzzy search over the stored contacts.
func (h *ContactHandler) SearchContacts(c echo.Context) error {
	input := &usecase.SearchContactsInput{
		Text:          c.QueryParam("q"),
		FavoritesOnly: c.QueryParam("favorites") == "true",
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid limit")
		}
		input.Limit = limit
	}
	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid offset")
		}
		input.Offset = offset
	}
	for _, raw := range c.QueryParams()["groups"] {
		groupID, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid group id")
		}
		input.GroupIDs = append(input.GroupIDs, groupID)
	}

	contacts, err := h.uc.SearchContacts(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, contacts, "")
}
