package group

import (
	"slices"
	"strings"
	"time"

	"github.com/iota-uz/refconsole/pkg/bulkdelete"
)

type Group struct {
	id          string
	code        string
	name        string
	description string
	memberIDs   []string
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

type Fields struct {
	Code        string
	Name        string
	Description string
}

func New(f Fields, memberIDs []string) Group {
	return Group{}.withFields(f).WithMembers(memberIDs)
}

func Hydrate(id string, f Fields, memberIDs []string, version int64, createdAt, updatedAt time.Time) Group {
	g := New(f, memberIDs)
	g.id = id
	g.version = version
	g.createdAt = createdAt
	g.updatedAt = updatedAt
	return g
}

func (g Group) withFields(f Fields) Group {
	g.code = strings.TrimSpace(f.Code)
	g.name = strings.TrimSpace(f.Name)
	g.description = strings.TrimSpace(f.Description)
	return g
}

// Update replaces the editable fields and keeps identity, members and version.
func (g Group) Update(f Fields) Group {
	return g.withFields(f)
}

// WithMembers returns a copy with the given member ids, in order, without
// duplicates or empty ids.
func (g Group) WithMembers(ids []string) Group {
	seen := make(map[string]struct{}, len(ids))
	members := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}
	g.memberIDs = members
	return g
}

func (g Group) ID() string           { return g.id }
func (g Group) Code() string         { return g.code }
func (g Group) Name() string         { return g.name }
func (g Group) Description() string  { return g.description }
func (g Group) MemberIDs() []string  { return slices.Clone(g.memberIDs) }
func (g Group) Version() int64       { return g.version }
func (g Group) CreatedAt() time.Time { return g.createdAt }
func (g Group) UpdatedAt() time.Time { return g.updatedAt }
func (g Group) IsNew() bool          { return g.id == "" }

func (g Group) Fields() Fields {
	return Fields{Code: g.code, Name: g.name, Description: g.description}
}

func (g Group) DeleteCandidate() bulkdelete.Candidate {
	return bulkdelete.Candidate{ID: g.id, Name: g.name, Code: g.code, Version: g.version}
}
