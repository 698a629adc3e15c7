package models

import "time"

type ActionLog struct {
	ID        uint
	Kind      string
	Method    string
	Path      string
	Resource  string
	Action    string
	Outcome   string
	Before    []byte
	After     []byte
	RequestID string
	UserAgent string
	IP        string
	CreatedAt time.Time
}
