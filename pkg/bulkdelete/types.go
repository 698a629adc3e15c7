package bulkdelete

import (
	"bytes"
	"context"
	"encoding/json"
)

// Candidate is a row selected for deletion. Version is echoed back to the
// server exactly as it was read.
type Candidate struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Version int64  `json:"version"`
}

func IDs(items []Candidate) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// ConflictReport is the server answer to a delete check. Payload is opaque.
type ConflictReport struct {
	HasError bool            `json:"hasError"`
	Payload  json.RawMessage `json:"payload"`
}

// Clean reports whether the selection can be deleted as is.
func (r ConflictReport) Clean() bool {
	return !r.HasError && isNull(r.Payload)
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

type CheckResult struct {
	Success bool
	Report  ConflictReport
}

type CommitResult struct {
	Success    bool `json:"success"`
	StatusCode int  `json:"statusCode"`
}

type Checker interface {
	CheckDeleteMultiple(ctx context.Context, items []Candidate) (CheckResult, error)
}

type Committer interface {
	DeleteMultiple(ctx context.Context, items []Candidate) (CommitResult, error)
}

type Gateway interface {
	Checker
	Committer
}

// Conflict is what the conflict-report collaborator receives.
type Conflict struct {
	DeleteURL  string          `json:"deleteUrl"`
	IDs        []string        `json:"ids"`
	Candidates []Candidate     `json:"candidates"`
	HasError   bool            `json:"hasError"`
	Payload    json.RawMessage `json:"payload"`
}

type ConflictReporter interface {
	ReportConflict(ctx context.Context, conflict Conflict)
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

type Notification struct {
	Level     Level  `json:"level"`
	MessageID string `json:"messageId"`
	Message   string `json:"message"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type SelectionClearer interface {
	ClearSelection(ctx context.Context)
}

type Refresher interface {
	Refresh(ctx context.Context) error
}

type Outcome string

const (
	OutcomeNothing      Outcome = "nothing"
	OutcomeDeleted      Outcome = "deleted"
	OutcomeConflict     Outcome = "conflict"
	OutcomeCheckFailed  Outcome = "check_failed"
	OutcomeCommitFailed Outcome = "commit_failed"
)

type Result struct {
	Outcome  Outcome       `json:"outcome"`
	Conflict *Conflict     `json:"conflict,omitempty"`
	Commit   *CommitResult `json:"commit,omitempty"`
}

// OutcomeEvent is published after every protocol run.
type OutcomeEvent struct {
	Resource   string
	Outcome    Outcome
	Candidates []Candidate
	Err        error
}
