package actionlog

import (
	"context"
	"encoding/json"
	"time"
)

// Kind tells request entries from domain event entries.
type Kind string

const (
	KindRequest Kind = "request"
	KindEvent   Kind = "event"
)

type ActionLog struct {
	ID        uint
	Kind      Kind
	Method    string
	Path      string
	Resource  string
	Action    string
	Outcome   string
	Before    json.RawMessage
	After     json.RawMessage
	RequestID string
	UserAgent string
	IP        string
	CreatedAt time.Time
}

type FindParams struct {
	Kind     Kind
	Resource string
	Action   string
	Path     string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*ActionLog, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	Create(ctx context.Context, log *ActionLog) error
}
