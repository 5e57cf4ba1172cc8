// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"rolodex/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ContactHandler *handler.ContactHandler
	GroupHandler   *handler.GroupHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	contactHandler *handler.ContactHandler
	groupHandler   *handler.GroupHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		contactHandler: params.ContactHandler,
		groupHandler:   params.GroupHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	contactGroup := api.Group("/contacts")
	{
		contactGroup.GET("", r.contactHandler.ListContacts)
		contactGroup.POST("", r.contactHandler.CreateContact)
		contactGroup.GET("/search", r.contactHandler.SearchContacts)
		contactGroup.POST("/bulk-delete", r.contactHandler.BulkDeleteContacts)
		contactGroup.GET("/:id", r.contactHandler.GetContact)
		contactGroup.PATCH("/:id", r.contactHandler.UpdateContact)
		contactGroup.DELETE("/:id", r.contactHandler.DeleteContact)
	}

	groupGroup := api.Group("/groups")
	{
		groupGroup.GET("", r.groupHandler.ListGroups)
		groupGroup.POST("", r.groupHandler.CreateGroup)
		groupGroup.GET("/:id", r.groupHandler.GetGroup)
		groupGroup.PATCH("/:id", r.groupHandler.UpdateGroup)
		groupGroup.DELETE("/:id", r.groupHandler.DeleteGroup)
	}
}
