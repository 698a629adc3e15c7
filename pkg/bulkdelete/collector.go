package bulkdelete

import (
	"context"
	"sync"
)

// Collector implements every hook by recording what happened, so a request
// handler can report one run in its response. Refresh delegates to
// RefreshFunc when set.
type Collector struct {
	RefreshFunc func(ctx context.Context) error

	mu               sync.Mutex
	notifications    []Notification
	conflict         *Conflict
	selectionCleared bool
	refreshed        bool
}

func (c *Collector) Hooks() Hooks {
	return Hooks{Reporter: c, Notifier: c, Selection: c, Refresher: c}
}

func (c *Collector) ReportConflict(_ context.Context, conflict Conflict) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conflict = &conflict
}

func (c *Collector) Notify(_ context.Context, n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append(c.notifications, n)
}

func (c *Collector) ClearSelection(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectionCleared = true
}

func (c *Collector) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.refreshed = true
	fn := c.RefreshFunc
	c.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (c *Collector) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notification(nil), c.notifications...)
}

func (c *Collector) Conflict() *Conflict {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conflict
}

func (c *Collector) SelectionCleared() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectionCleared
}

func (c *Collector) Refreshed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshed
}
