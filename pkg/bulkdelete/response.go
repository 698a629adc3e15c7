package bulkdelete

import (
	"context"

	"github.com/iota-uz/refconsole/pkg/intl"
)

// Response is the JSON body the console answers a bulk delete request with.
type Response struct {
	Outcome          Outcome        `json:"outcome"`
	Notifications    []Notification `json:"notifications"`
	SelectionCleared bool           `json:"selectionCleared"`
	Conflict         *Conflict      `json:"conflict,omitempty"`
	Commit           *CommitResult  `json:"result,omitempty"`
	// Refreshed carries the reloaded list when the run succeeded.
	Refreshed any `json:"refreshed,omitempty"`
}

// NewResponse localizes the collected notifications with the request localizer.
func NewResponse(ctx context.Context, res Result, c *Collector, refreshed any) Response {
	notifications := c.Notifications()
	if notifications == nil {
		notifications = []Notification{}
	}
	for i, n := range notifications {
		notifications[i].Message = intl.T(ctx, n.MessageID, n.Message, nil)
	}
	resp := Response{
		Outcome:          res.Outcome,
		Notifications:    notifications,
		SelectionCleared: c.SelectionCleared(),
		Conflict:         res.Conflict,
		Commit:           res.Commit,
	}
	if c.Refreshed() {
		resp.Refreshed = refreshed
	}
	return resp
}
