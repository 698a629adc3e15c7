package transfer

// Partition splits the candidate ids into the available and assigned lists.
// Both lists keep candidate store order.
func Partition(candidates []Candidate, membership *MembershipSet) (available, assigned []string) {
	available = make([]string, 0, len(candidates))
	assigned = make([]string, 0, membership.Len())
	for _, c := range candidates {
		if membership.Has(c.ID) {
			assigned = append(assigned, c.ID)
			continue
		}
		available = append(available, c.ID)
	}
	return available, assigned
}

// ArrayMove returns a copy of ids with the element at from moved to index to.
// Out of range indexes return an unchanged copy.
func ArrayMove(ids []string, from, to int) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	item := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]string{item}, out[to:]...)...)
	return out
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
