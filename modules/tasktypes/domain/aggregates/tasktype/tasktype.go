package tasktype

import (
	"strings"
	"time"

	"github.com/iota-uz/refconsole/pkg/bulkdelete"
)

type Status string

const (
	StatusEnabled  Status = "enabled"
	StatusDisabled Status = "disabled"
)

func (s Status) Valid() bool {
	return s == StatusEnabled || s == StatusDisabled
}

type TaskType struct {
	id          string
	code        string
	name        string
	description string
	status      Status
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

type Fields struct {
	Code        string
	Name        string
	Description string
	Status      Status
}

func New(f Fields) TaskType {
	t := TaskType{}.with(f)
	if !t.status.Valid() {
		t.status = StatusEnabled
	}
	return t
}

func Hydrate(id string, f Fields, version int64, createdAt, updatedAt time.Time) TaskType {
	t := TaskType{}.with(f)
	t.id = id
	t.version = version
	t.createdAt = createdAt
	t.updatedAt = updatedAt
	return t
}

func (t TaskType) Update(f Fields) TaskType {
	return t.with(f)
}

func (t TaskType) with(f Fields) TaskType {
	t.code = strings.ToUpper(strings.TrimSpace(f.Code))
	t.name = strings.TrimSpace(f.Name)
	t.description = strings.TrimSpace(f.Description)
	t.status = f.Status
	return t
}

func (t TaskType) ID() string           { return t.id }
func (t TaskType) Code() string         { return t.code }
func (t TaskType) Name() string         { return t.name }
func (t TaskType) Description() string  { return t.description }
func (t TaskType) Status() Status       { return t.status }
func (t TaskType) Version() int64       { return t.version }
func (t TaskType) CreatedAt() time.Time { return t.createdAt }
func (t TaskType) UpdatedAt() time.Time { return t.updatedAt }

func (t TaskType) DeleteCandidate() bulkdelete.Candidate {
	return bulkdelete.Candidate{ID: t.id, Name: t.name, Code: t.code, Version: t.version}
}
