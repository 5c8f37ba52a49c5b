package lifecycle

import (
	"sync"

	"github.com/kbukum/dock/errors"
)

// guard admits one active controller per process.
var guard struct {
	mu     sync.Mutex
	active string
}

func claim(id string) error {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	if guard.active != "" {
		return errors.MultipleControllers(guard.active)
	}
	guard.active = id
	return nil
}

func release(id string) {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	if guard.active == id {
		guard.active = ""
	}
}

// Active returns the ID of the active controller, or "" if none.
func Active() string {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	return guard.active
}
