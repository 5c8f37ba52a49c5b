package lifecycle

import (
	"fmt"
)

// Hook is a callback run at a controller lifecycle point.
type Hook func(c *Controller) error

// OnReady registers hooks run after every successful candidate reload.
func (c *Controller) OnReady(hooks ...Hook) {
	c.onReady = append(c.onReady, hooks...)
}

// OnChange registers hooks run after a single registration or an
// Instantiate changed the registry between reloads.
func (c *Controller) OnChange(hooks ...Hook) {
	c.onChange = append(c.onChange, hooks...)
}

// OnShutdown registers hooks run at Shutdown, before disposal.
func (c *Controller) OnShutdown(hooks ...Hook) {
	c.onStop = append(c.onStop, hooks...)
}

// runHooks executes hooks sequentially, returning the first error.
func runHooks(c *Controller, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(c); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}
