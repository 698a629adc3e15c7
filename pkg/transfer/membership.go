package transfer

// MembershipSet is the set of ids currently assigned. IDs preserves insertion
// order so members that are not among the candidates keep a stable position.
type MembershipSet struct {
	members map[string]struct{}
	order   []string
}

func NewMembershipSet(ids ...string) *MembershipSet {
	m := &MembershipSet{members: make(map[string]struct{}, len(ids))}
	m.AddAll(ids)
	return m
}

func (m *MembershipSet) Has(id string) bool {
	_, ok := m.members[id]
	return ok
}

func (m *MembershipSet) Len() int {
	return len(m.order)
}

// Add reports whether id was not a member before.
func (m *MembershipSet) Add(id string) bool {
	if id == "" || m.Has(id) {
		return false
	}
	m.members[id] = struct{}{}
	m.order = append(m.order, id)
	return true
}

// Remove reports whether id was a member before.
func (m *MembershipSet) Remove(id string) bool {
	if !m.Has(id) {
		return false
	}
	delete(m.members, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// AddAll returns the ids that were actually added.
func (m *MembershipSet) AddAll(ids []string) []string {
	added := make([]string, 0, len(ids))
	for _, id := range ids {
		if m.Add(id) {
			added = append(added, id)
		}
	}
	return added
}

// RemoveAll returns the ids that were actually removed.
func (m *MembershipSet) RemoveAll(ids []string) []string {
	drop := make(map[string]struct{}, len(ids))
	removed := make([]string, 0, len(ids))
	for _, id := range ids {
		if !m.Has(id) {
			continue
		}
		if _, seen := drop[id]; seen {
			continue
		}
		drop[id] = struct{}{}
		delete(m.members, id)
		removed = append(removed, id)
	}
	if len(removed) == 0 {
		return removed
	}
	kept := m.order[:0]
	for _, id := range m.order {
		if _, gone := drop[id]; !gone {
			kept = append(kept, id)
		}
	}
	m.order = kept
	return removed
}

func (m *MembershipSet) IDs() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

func (m *MembershipSet) Clone() *MembershipSet {
	return NewMembershipSet(m.order...)
}
