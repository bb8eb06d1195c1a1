package service

import (
	"sync"
	"time"

	"tg-relay/internal/models"
)

// PendingStore maps admin id to the single outstanding reply directive.
// Setting a new action replaces any prior one; Take is an atomic
// read-and-remove so a directive is consumed exactly once.
type PendingStore struct {
	mu      sync.Mutex
	actions map[int64]models.PendingAction
	ttl     time.Duration
}

// NewPendingStore creates the store. A positive ttl expires directives
// that were never followed up; ttl 0 keeps them until consumed or
// replaced.
func NewPendingStore(ttl time.Duration) *PendingStore {
	s := &PendingStore{
		actions: make(map[int64]models.PendingAction),
		ttl:     ttl,
	}

	if ttl > 0 {
		go s.cleanupExpired()
	}

	return s
}

// Set records the admin's next-message directive, replacing any prior one.
func (s *PendingStore) Set(adminID int64, action models.PendingAction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	action.CreatedAt = time.Now()
	s.actions[adminID] = action
}

// Take removes and returns the admin's directive. The second return is
// false when nothing is pending or the directive has expired.
func (s *PendingStore) Take(adminID int64) (models.PendingAction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	action, ok := s.actions[adminID]
	if !ok {
		return models.PendingAction{}, false
	}
	delete(s.actions, adminID)

	if s.ttl > 0 && time.Since(action.CreatedAt) > s.ttl {
		return models.PendingAction{}, false
	}
	return action, true
}

// Clear drops the admin's directive if one exists.
func (s *PendingStore) Clear(adminID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.actions, adminID)
}

// cleanupExpired periodically removes expired entries
func (s *PendingStore) cleanupExpired() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for adminID, action := range s.actions {
			if now.Sub(action.CreatedAt) > s.ttl {
				delete(s.actions, adminID)
			}
		}
		s.mu.Unlock()
	}
}
