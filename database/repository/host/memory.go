package hostRepo

import (
	"sync"

	"calendary/models"
)

// MemoryHostRepo is an in-memory HostRepository for tests and local
// development.
type MemoryHostRepo struct {
	mu    sync.RWMutex
	hosts map[string]*models.HostProfile
}

// NewMemoryHostRepo creates an empty in-memory host store.
func NewMemoryHostRepo() *MemoryHostRepo {
	return &MemoryHostRepo{hosts: make(map[string]*models.HostProfile)}
}

// GetByID retrieves a host by its unique ID.
func (r *MemoryHostRepo) GetByID(id string) (*models.HostProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.hosts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *h
	return &copied, nil
}

// GetByUsername retrieves a host by its public booking-page handle.
func (r *MemoryHostRepo) GetByUsername(username string) (*models.HostProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.hosts {
		if h.Username == username {
			copied := *h
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// Create inserts a new host profile.
func (r *MemoryHostRepo) Create(host *models.HostProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *host
	r.hosts[host.ID] = &copied
	return nil
}

// Update replaces an existing host profile.
func (r *MemoryHostRepo) Update(host *models.HostProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.hosts[host.ID]; !ok {
		return ErrNotFound
	}
	copied := *host
	r.hosts[host.ID] = &copied
	return nil
}

// UpdateAvailability replaces only the host's weekly schedule.
func (r *MemoryHostRepo) UpdateAvailability(id string, av models.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.hosts[id]
	if !ok {
		return ErrNotFound
	}
	h.Availability = av
	return nil
}

// UpdatePolicy replaces only the host's booking policy.
func (r *MemoryHostRepo) UpdatePolicy(id string, policy models.BookingPolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.hosts[id]
	if !ok {
		return ErrNotFound
	}
	h.Policy = policy
	return nil
}

// Delete removes a host profile by ID.
func (r *MemoryHostRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.hosts[id]; !ok {
		return ErrNotFound
	}
	delete(r.hosts, id)
	return nil
}
