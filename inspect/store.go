package inspect

import (
	"sync/atomic"

	"github.com/kbukum/dock/lifecycle"
	"github.com/kbukum/dock/observability"
)

type published struct {
	snapshot lifecycle.Snapshot
	health   observability.Health
}

// Store holds the most recently published controller view.
type Store struct {
	current atomic.Pointer[published]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Publish captures c's snapshot and health. Its signature matches
// lifecycle.Hook.
func (s *Store) Publish(c *lifecycle.Controller) error {
	s.current.Store(&published{
		snapshot: c.Snapshot(),
		health:   c.Health(),
	})
	return nil
}

// Snapshot returns the latest snapshot; ok is false before the first
// Publish.
func (s *Store) Snapshot() (lifecycle.Snapshot, bool) {
	p := s.current.Load()
	if p == nil {
		return lifecycle.Snapshot{}, false
	}
	return p.snapshot, true
}

// Health returns the latest controller health, down before the first
// Publish.
func (s *Store) Health() observability.Health {
	p := s.current.Load()
	if p == nil {
		return observability.Health{
			Name:    "dock",
			Status:  observability.HealthStatusDown,
			Message: "no snapshot published",
		}
	}
	return p.health
}
