package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	hostRepo "calendary/database/repository/host"
	"calendary/models"
	"calendary/services/availability"
	"calendary/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const profileCacheTTL = 60 * time.Second

// HostHandler serves host profile reads and the dashboard write paths for
// availability and policy.
type HostHandler struct {
	Repo  hostRepo.HostRepository
	Cache *redis.Client // optional; public profiles are cached briefly
}

// NewHostHandler creates a HostHandler.
func NewHostHandler(repo hostRepo.HostRepository, cache *redis.Client) *HostHandler {
	return &HostHandler{Repo: repo, Cache: cache}
}

// publicProfile is the subset of a host document the booking page needs.
type publicProfile struct {
	Username       string `json:"username"`
	DisplayName    string `json:"displayName"`
	WelcomeMessage string `json:"welcomeMessage"`
	Timezone       string `json:"timezone"`
	SlotDuration   int    `json:"slotDuration"`
}

// GetPublicProfile returns the public booking-page view of a host.
func (h *HostHandler) GetPublicProfile(c *gin.Context) {
	username := c.Param("username")

	if h.Cache != nil {
		if cached, err := h.Cache.Get(c.Request.Context(), profileCacheKey(username)).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	host, err := h.Repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, hostRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "host not found", username)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load host", err.Error())
		return
	}

	profile := publicProfile{
		Username:       host.Username,
		DisplayName:    host.DisplayName,
		WelcomeMessage: host.WelcomeMessage,
		Timezone:       host.Availability.Timezone,
		SlotDuration:   host.Policy.SlotDuration,
	}

	if h.Cache != nil {
		if body, err := json.Marshal(profile); err == nil {
			_ = h.Cache.Set(c.Request.Context(), profileCacheKey(username), body, profileCacheTTL).Err()
		}
	}
	c.JSON(http.StatusOK, profile)
}

// RegisterHost creates a new host with the default schedule and policy.
func (h *HostHandler) RegisterHost(c *gin.Context) {
	var input struct {
		Username    string `json:"username" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		DisplayName string `json:"displayName"`
		Timezone    string `json:"timezone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	av := models.DefaultAvailability(input.Timezone)
	if err := availability.Validate(av); err != nil {
		utils.JSONError(c, http.StatusUnprocessableEntity, "invalid timezone", err.Error())
		return
	}

	host := &models.HostProfile{
		ID:             uuid.New().String(),
		Username:       input.Username,
		Email:          input.Email,
		DisplayName:    input.DisplayName,
		WelcomeMessage: "Welcome to my scheduling page. Please follow the instructions to add an event to my calendar.",
		Availability:   av,
		Policy:         models.DefaultPolicy(),
		CreatedAt:      time.Now(),
	}
	if err := h.Repo.Create(host); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create host", err.Error())
		return
	}
	c.JSON(http.StatusCreated, host)
}

// UpdateAvailability replaces a host's weekly schedule. The body may be the
// unified multi-interval shape or the legacy single-interval shape, which is
// adapted on write. Unknown fields are rejected rather than silently kept.
func (h *HostHandler) UpdateAvailability(c *gin.Context) {
	hostID := c.Param("hostID")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read body", err.Error())
		return
	}

	av, err := decodeAvailability(body)
	if err != nil {
		var invalid *availability.InvalidAvailabilityError
		if errors.As(err, &invalid) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "invalid availability", invalid.Reason)
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "malformed availability", err.Error())
		return
	}

	if err := h.Repo.UpdateAvailability(hostID, av); err != nil {
		if errors.Is(err, hostRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "host not found", hostID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update availability", err.Error())
		return
	}
	h.invalidateProfile(c.Request.Context(), hostID)
	c.JSON(http.StatusOK, av)
}

// UpdatePolicy replaces a host's booking policy.
func (h *HostHandler) UpdatePolicy(c *gin.Context) {
	hostID := c.Param("hostID")

	var policy models.BookingPolicy
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&policy); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "malformed policy", err.Error())
		return
	}
	if err := availability.ValidatePolicy(policy); err != nil {
		utils.JSONError(c, http.StatusUnprocessableEntity, "invalid policy", err.Error())
		return
	}

	if err := h.Repo.UpdatePolicy(hostID, policy); err != nil {
		if errors.Is(err, hostRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "host not found", hostID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update policy", err.Error())
		return
	}
	h.invalidateProfile(c.Request.Context(), hostID)
	c.JSON(http.StatusOK, policy)
}

// decodeAvailability decodes either the unified or the legacy availability
// shape, strictly, and validates the result.
func decodeAvailability(body []byte) (models.Availability, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return models.Availability{}, err
	}

	if _, isLegacy := probe["days"]; isLegacy {
		var legacy availability.LegacyAvailability
		decoder := json.NewDecoder(bytes.NewReader(body))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&legacy); err != nil {
			return models.Availability{}, err
		}
		return availability.FromLegacy(legacy)
	}

	var av models.Availability
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&av); err != nil {
		return models.Availability{}, err
	}
	if err := availability.Validate(av); err != nil {
		return models.Availability{}, err
	}
	return av, nil
}

func (h *HostHandler) invalidateProfile(ctx context.Context, hostID string) {
	if h.Cache == nil {
		return
	}
	host, err := h.Repo.GetByID(hostID)
	if err != nil {
		return
	}
	_ = h.Cache.Del(ctx, profileCacheKey(host.Username)).Err()
}

func profileCacheKey(username string) string {
	return "profile:" + username
}
