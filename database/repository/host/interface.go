package hostRepo

import (
	"errors"

	"calendary/models"
)

// ErrNotFound is returned when no host matches the given id or username.
var ErrNotFound = errors.New("host not found")

// HostRepository defines access to host profile documents: identity,
// availability and booking policy.
type HostRepository interface {
	// GetByID retrieves a host by its unique ID.
	GetByID(id string) (*models.HostProfile, error)
	// GetByUsername retrieves a host by its public booking-page handle.
	GetByUsername(username string) (*models.HostProfile, error)
	// Create inserts a new host profile.
	Create(host *models.HostProfile) error
	// Update replaces an existing host profile.
	Update(host *models.HostProfile) error
	// UpdateAvailability replaces only the host's weekly schedule. The
	// caller is expected to have validated it.
	UpdateAvailability(id string, av models.Availability) error
	// UpdatePolicy replaces only the host's booking policy.
	UpdatePolicy(id string, policy models.BookingPolicy) error
	// Delete removes a host profile by ID.
	Delete(id string) error
}
