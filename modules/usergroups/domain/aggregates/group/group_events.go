package group

import (
	"github.com/wI2L/jsondiff"
)

// SavedEvent is published after a successful save. Changes is the JSON patch
// from the previous state to the saved one; it is empty for a new group.
type SavedEvent struct {
	Group   Group
	Created bool
	Changes jsondiff.Patch
}

// MembershipChangedEvent is published after every membership mutation made in
// an assignment session.
type MembershipChangedEvent struct {
	SessionID  string
	GroupID    string
	TargetKeys []string
	Direction  string
	Moved      []string
}
