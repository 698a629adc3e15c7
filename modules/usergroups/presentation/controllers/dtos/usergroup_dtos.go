package dtos

import (
	"github.com/iota-uz/refconsole/modules/usergroups/domain/aggregates/group"
	"github.com/iota-uz/refconsole/modules/usergroups/services"
	"github.com/iota-uz/refconsole/pkg/bulkdelete"
	"github.com/iota-uz/refconsole/pkg/transfer"
)

type Group struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MemberIDs   []string `json:"memberIds"`
	Version     int64    `json:"version"`
}

func GroupFromDomain(g group.Group) Group {
	members := g.MemberIDs()
	if members == nil {
		members = []string{}
	}
	return Group{
		ID:          g.ID(),
		Code:        g.Code(),
		Name:        g.Name(),
		Description: g.Description(),
		MemberIDs:   members,
		Version:     g.Version(),
	}
}

type GroupPage struct {
	Items   []Group `json:"items"`
	Total   int64   `json:"total"`
	Page    int     `json:"page"`
	PerPage int     `json:"perPage"`
	HasMore bool    `json:"hasMore"`
}

type GroupQuery struct {
	Q       string `json:"q"`
	Page    int    `json:"page"`
	PerPage int    `json:"limit"`
}

type DeleteMultipleRequest struct {
	bulkdelete.Selection
	Query GroupQuery `json:"query"`
}

type DragState struct {
	State   string            `json:"state"`
	Overlay *transfer.Overlay `json:"overlay,omitempty"`
}

type Session struct {
	ID         string            `json:"id"`
	Group      *Group            `json:"group,omitempty"`
	Available  transfer.ListView `json:"available"`
	Assigned   transfer.ListView `json:"assigned"`
	TargetKeys []string          `json:"targetKeys"`
	Drag       DragState         `json:"drag"`
	Disabled   bool              `json:"disabled"`
	Applied    bool              `json:"applied"`
}

func SessionFromSnapshot(s services.MembershipSnapshot) Session {
	out := Session{
		ID:         s.ID,
		Available:  s.Available,
		Assigned:   s.Assigned,
		TargetKeys: s.TargetKeys,
		Drag:       DragState{State: s.DragState.String(), Overlay: s.Overlay},
		Disabled:   s.Disabled,
		Applied:    s.Applied,
	}
	if out.TargetKeys == nil {
		out.TargetKeys = []string{}
	}
	if s.Group.ID() != "" || s.Group.Code() != "" {
		g := GroupFromDomain(s.Group)
		out.Group = &g
	}
	return out
}

type OpenSessionRequest struct {
	GroupID    string `json:"groupId"`
	Q          string `json:"q"`
	Department string `json:"department"`
}

type RefreshRequest struct {
	Q          string `json:"q"`
	Department string `json:"department"`
}

type FilterRequest struct {
	Side  transfer.Side `json:"side"`
	Query string        `json:"query"`
}

type PageRequest struct {
	Side transfer.Side `json:"side"`
	Page int           `json:"page"`
}

type SelectRequest struct {
	Side     transfer.Side     `json:"side"`
	Op       services.SelectOp `json:"op"`
	Key      string            `json:"key"`
	Selected bool              `json:"selected"`
}

type TransferRequest struct {
	Op   services.TransferOp `json:"op"`
	Side transfer.Side       `json:"side"`
}

type ZonesRequest struct {
	Zones   []transfer.Zone                   `json:"zones"`
	Layouts map[transfer.Side]transfer.Layout `json:"layouts"`
}

type PointerRequest struct {
	Type transfer.PointerEventType `json:"type"`
	X    float64                   `json:"x"`
	Y    float64                   `json:"y"`
}

func (r PointerRequest) Event() transfer.PointerEvent {
	return transfer.PointerEvent{Type: r.Type, Point: transfer.Point{X: r.X, Y: r.Y}}
}
