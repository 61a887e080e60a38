package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	RegisterUser(c *ginext.Context)
	ListUsers(c *ginext.Context)
	RegisterConference(c *ginext.Context)
	GetConference(c *ginext.Context)
	ListConferences(c *ginext.Context)
	BookConference(c *ginext.Context)
	ConfirmWaitlist(c *ginext.Context)
	CancelBooking(c *ginext.Context)
	GetStatus(c *ginext.Context)
	GetUserBookings(c *ginext.Context)
}

func InitRouter(mode string, h Handler, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Users
		api.POST("/users", h.RegisterUser)
		api.GET("/users", h.ListUsers)
		api.GET("/users/:id/bookings", h.GetUserBookings)

		// Conferences
		api.POST("/conferences", h.RegisterConference)
		api.GET("/conferences", h.ListConferences)
		api.GET("/conferences/:name", h.GetConference)
		api.POST("/conferences/:name/book", h.BookConference)

		// Waitlist and bookings
		api.POST("/waitlist/:id/confirm", h.ConfirmWaitlist)
		api.DELETE("/bookings/:id", h.CancelBooking)
		api.GET("/bookings/:id", h.GetStatus)
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	return router
}
