package handlers

import (
	"errors"
	"net/http"

	hostRepo "calendary/database/repository/host"
	"calendary/services/availability"
	"calendary/services/booking"
	"calendary/services/stats"
	"calendary/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves booking creation and cancellation plus the host
// dashboard's booking list and stats.
type BookingHandler struct {
	Service booking.BookingService
	Stats   stats.StatsService
	Hosts   hostRepo.HostRepository
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService, statsSvc stats.StatsService, hosts hostRepo.HostRepository) *BookingHandler {
	return &BookingHandler{Service: svc, Stats: statsSvc, Hosts: hosts}
}

// CreateBooking books a slot for a guest.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking request", err.Error())
		return
	}

	created, err := h.Service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		switch {
		case booking.IsConflict(err):
			utils.JSONError(c, http.StatusConflict, "slot no longer available", err.Error())
		case errors.Is(err, hostRepo.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "host not found", req.HostID)
		default:
			var invalid *availability.InvalidAvailabilityError
			if errors.As(err, &invalid) {
				utils.JSONError(c, http.StatusUnprocessableEntity, "invalid availability", invalid.Reason)
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "failed to create booking", err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// CancelBooking cancels a booking by id. Cancelling an already cancelled
// booking succeeds without changing anything.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.CancelBooking(c.Request.Context(), id); err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found", id)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "cancelled"})
}

// ListBookings returns a host's bookings with derived display statuses.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	hostID := c.Param("hostID")
	if _, err := h.Hosts.GetByID(hostID); err != nil {
		if errors.Is(err, hostRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "host not found", hostID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load host", err.Error())
		return
	}

	views, err := h.Service.ListBookings(c.Request.Context(), hostID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"hostId": hostID, "bookings": views})
}

// GetStats returns the dashboard summary for a host.
func (h *BookingHandler) GetStats(c *gin.Context) {
	hostID := c.Param("hostID")
	host, err := h.Hosts.GetByID(hostID)
	if err != nil {
		if errors.Is(err, hostRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "host not found", hostID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load host", err.Error())
		return
	}

	summary, err := h.Stats.Summarize(c.Request.Context(), host)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute stats", err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}
