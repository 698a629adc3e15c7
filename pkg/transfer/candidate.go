package transfer

import (
	"sort"
	"sync/atomic"
)

// Side identifies one of the two lists of the widget.
type Side string

const (
	SideAvailable Side = "available"
	SideAssigned  Side = "assigned"
)

func (s Side) Valid() bool {
	return s == SideAvailable || s == SideAssigned
}

func (s Side) Opposite() Side {
	if s == SideAvailable {
		return SideAssigned
	}
	return SideAvailable
}

// Direction is reported to change listeners. Moving into the assigned list is "right".
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

func directionInto(side Side) Direction {
	if side == SideAssigned {
		return DirectionRight
	}
	return DirectionLeft
}

type Candidate struct {
	ID            string            `json:"id"`
	DisplayFields map[string]string `json:"displayFields"`
}

func (c Candidate) Field(name string) string {
	if c.DisplayFields == nil {
		return ""
	}
	return c.DisplayFields[name]
}

// FieldNames returns the display field names in a stable order.
func (c Candidate) FieldNames() []string {
	names := make([]string, 0, len(c.DisplayFields))
	for name := range c.DisplayFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ticket is issued when a candidate refresh starts.
type Ticket uint64

// Sequencer hands out monotonically increasing tickets and tells whether a
// ticket is still the most recently issued one.
type Sequencer struct {
	last atomic.Uint64
}

func (s *Sequencer) Next() Ticket {
	return Ticket(s.last.Add(1))
}

func (s *Sequencer) IsLatest(t Ticket) bool {
	return t != 0 && uint64(t) == s.last.Load()
}

func (s *Sequencer) Last() Ticket {
	return Ticket(s.last.Load())
}

// CandidateStore holds the latest accepted candidate list. The list is only
// ever replaced wholesale.
type CandidateStore struct {
	items []Candidate
	index map[string]int
	seq   Sequencer
}

func NewCandidateStore(items []Candidate) *CandidateStore {
	s := &CandidateStore{}
	s.replace(items)
	return s
}

// replace drops candidates with an empty or duplicate id, keeping the first occurrence.
func (s *CandidateStore) replace(items []Candidate) {
	s.items = make([]Candidate, 0, len(items))
	s.index = make(map[string]int, len(items))
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		if _, dup := s.index[item.ID]; dup {
			continue
		}
		s.index[item.ID] = len(s.items)
		s.items = append(s.items, item)
	}
}

// Begin issues the ticket a refresh response has to present to Apply.
func (s *CandidateStore) Begin() Ticket {
	return s.seq.Next()
}

// Apply replaces the candidates if t is still the latest ticket. Stale
// responses are discarded and false is returned.
func (s *CandidateStore) Apply(t Ticket, items []Candidate) bool {
	if !s.seq.IsLatest(t) {
		return false
	}
	s.replace(items)
	return true
}

func (s *CandidateStore) Items() []Candidate {
	out := make([]Candidate, len(s.items))
	copy(out, s.items)
	return out
}

func (s *CandidateStore) IDs() []string {
	ids := make([]string, len(s.items))
	for i, item := range s.items {
		ids[i] = item.ID
	}
	return ids
}

func (s *CandidateStore) Get(id string) (Candidate, bool) {
	i, ok := s.index[id]
	if !ok {
		return Candidate{}, false
	}
	return s.items[i], true
}

func (s *CandidateStore) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *CandidateStore) Len() int {
	return len(s.items)
}
