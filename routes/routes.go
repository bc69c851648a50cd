package routes

import (
	"net/http"

	"calendary/handlers"
	"calendary/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the public booking surface and the host dashboard onto
// the router.
func RegisterRoutes(
	router *gin.Engine,
	hostHandler *handlers.HostHandler,
	slotsHandler *handlers.SlotsHandler,
	bookingHandler *handlers.BookingHandler,
) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(middleware.RateLimitMiddleware())

	// Public booking page.
	api.POST("/hosts", hostHandler.RegisterHost)
	api.GET("/hosts/:username", hostHandler.GetPublicProfile)
	api.GET("/hosts/:username/slots", slotsHandler.ListSlots)
	api.POST("/bookings", bookingHandler.CreateBooking)
	api.POST("/bookings/:id/cancel", bookingHandler.CancelBooking)

	// Host dashboard.
	dashboard := api.Group("/dashboard/:hostID")
	dashboard.GET("/bookings", bookingHandler.ListBookings)
	dashboard.GET("/stats", bookingHandler.GetStats)
	dashboard.PUT("/availability", hostHandler.UpdateAvailability)
	dashboard.PUT("/policy", hostHandler.UpdatePolicy)
}
