package service

import (
	"sort"
	"sync"
	"time"

	"tg-relay/internal/logger"
	"tg-relay/internal/models"
)

// Registry holds the admin set, the known groups and the allow/block
// classification. One RWMutex guards all four maps: read-modify-write
// sequences such as ToggleActive and Block stay atomic, and traffic is
// low enough that per-map locking buys nothing.
type Registry struct {
	mu      sync.RWMutex
	groups  map[int64]*models.Group
	admins  map[int64]struct{}
	allowed map[int64]struct{}
	blocked map[int64]struct{}
}

// NewRegistry builds a registry from the startup configuration lists.
func NewRegistry(adminIDs, allowedGroups, blockedGroups []int64) *Registry {
	r := &Registry{
		groups:  make(map[int64]*models.Group),
		admins:  make(map[int64]struct{}),
		allowed: make(map[int64]struct{}),
		blocked: make(map[int64]struct{}),
	}
	for _, id := range adminIDs {
		r.admins[id] = struct{}{}
	}
	for _, id := range allowedGroups {
		r.allowed[id] = struct{}{}
	}
	for _, id := range blockedGroups {
		// Block wins when a group id appears in both lists.
		delete(r.allowed, id)
		r.blocked[id] = struct{}{}
	}
	return r
}

// RegisterGroup inserts a new active group. Registering an already known
// group id is a no-op and returns the existing entry.
func (r *Registry) RegisterGroup(id int64, title string) models.Group {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.groups[id]; ok {
		return *g
	}

	g := &models.Group{
		GroupID:      id,
		Title:        title,
		Active:       true,
		LastActivity: time.Now(),
	}
	r.groups[id] = g
	logger.Infof("Group registered: %s (%d)", title, id)
	return *g
}

// IsAdmitted is the admission gate evaluated when the bot joins a group:
// a non-empty allow-list excludes everything outside it, and the
// block-list always excludes.
func (r *Registry) IsAdmitted(id int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, blocked := r.blocked[id]; blocked {
		return false
	}
	if len(r.allowed) == 0 {
		return true
	}
	_, ok := r.allowed[id]
	return ok
}

// Group returns a copy of the group entry.
func (r *Registry) Group(id int64) (models.Group, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.groups[id]
	if !ok {
		return models.Group{}, false
	}
	return *g, true
}

// Groups returns all registered groups ordered by id.
func (r *Registry) Groups() []models.Group {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Group, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GroupID < out[j].GroupID })
	return out
}

// TouchGroup refreshes the group's last-activity timestamp (active
// groups only) and returns the current entry.
func (r *Registry) TouchGroup(id int64) (models.Group, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[id]
	if !ok {
		return models.Group{}, false
	}
	if g.Active {
		g.LastActivity = time.Now()
	}
	return *g, true
}

// SetActive sets the group's active flag.
func (r *Registry) SetActive(id int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[id]
	if !ok {
		return ErrGroupNotFound
	}
	g.Active = active
	return nil
}

// ToggleActive flips the group's active flag and returns the new value.
func (r *Registry) ToggleActive(id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[id]
	if !ok {
		return false, ErrGroupNotFound
	}
	g.Active = !g.Active
	logger.Infof("Group %d active=%t", id, g.Active)
	return g.Active, nil
}

// Allow puts the group id on the allow-list, evicting it from the
// block-list. The two sets are mutually exclusive.
func (r *Registry) Allow(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.blocked, id)
	r.allowed[id] = struct{}{}
}

// Block puts the group id on the block-list, evicting it from the
// allow-list and from the live registry. The evicted group entry is
// returned so the caller can leave the chat and notify it.
func (r *Registry) Block(id int64) (models.Group, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.allowed, id)
	r.blocked[id] = struct{}{}

	g, ok := r.groups[id]
	if !ok {
		return models.Group{}, false
	}
	delete(r.groups, id)
	logger.Infof("Group blocked and removed: %s (%d)", g.Title, id)
	return *g, true
}

// RemoveGroup drops a group from the registry, e.g. when the bot is
// removed from the chat.
func (r *Registry) RemoveGroup(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[id]; !ok {
		return false
	}
	delete(r.groups, id)
	return true
}

// AddAdmin adds an admin id; returns false when already present.
func (r *Registry) AddAdmin(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.admins[id]; ok {
		return false
	}
	r.admins[id] = struct{}{}
	logger.Infof("Admin added: %d", id)
	return true
}

// IsAdmin reports whether the id belongs to an administrator.
func (r *Registry) IsAdmin(id int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.admins[id]
	return ok
}

// Admins returns the admin ids in ascending order, for a deterministic
// fan-out.
func (r *Registry) Admins() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int64, 0, len(r.admins))
	for id := range r.admins {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
