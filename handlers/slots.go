package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"calendary/config"
	hostRepo "calendary/database/repository/host"
	"calendary/services/availability"
	"calendary/services/booking"
	"calendary/services/scheduling"
	"calendary/utils"

	"github.com/gin-gonic/gin"
)

// SlotsHandler serves the public slot listing for a host's booking page.
type SlotsHandler struct {
	Hosts   hostRepo.HostRepository
	Service booking.BookingService
	Now     func() time.Time
}

// NewSlotsHandler creates a SlotsHandler.
func NewSlotsHandler(hosts hostRepo.HostRepository, svc booking.BookingService) *SlotsHandler {
	return &SlotsHandler{Hosts: hosts, Service: svc, Now: time.Now}
}

// ListSlots returns the offerable slots for one calendar week, grouped by
// date. The week query parameter is an offset from the current week (0 by
// default) and is capped at the configured booking window.
func (h *SlotsHandler) ListSlots(c *gin.Context) {
	username := c.Param("username")

	week := 0
	if raw := c.Query("week"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid week offset", raw)
			return
		}
		week = parsed
	}
	windowDays := config.AppConfig.BookingWindowDays
	if windowDays <= 0 {
		windowDays = 28
	}
	if week > windowDays/7 {
		utils.JSONError(c, http.StatusBadRequest, "week offset beyond booking window", strconv.Itoa(week))
		return
	}

	host, err := h.Hosts.GetByUsername(username)
	if err != nil {
		if errors.Is(err, hostRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "host not found", username)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load host", err.Error())
		return
	}

	loc, err := time.LoadLocation(host.Availability.Timezone)
	if err != nil {
		utils.JSONError(c, http.StatusUnprocessableEntity, "invalid availability", err.Error())
		return
	}

	weekStart := scheduling.WeekStart(h.Now().In(loc)).AddDate(0, 0, 7*week)
	weekEnd := weekStart.AddDate(0, 0, 7)

	slots, err := h.Service.AvailableSlots(c.Request.Context(), host.ID, weekStart, weekEnd)
	if err != nil {
		var invalid *availability.InvalidAvailabilityError
		if errors.As(err, &invalid) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "invalid availability", invalid.Reason)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute slots", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"host":      host.Username,
		"timezone":  host.Availability.Timezone,
		"weekStart": weekStart.Format("2006-01-02"),
		"days":      scheduling.GroupByDate(slots, loc),
	})
}
