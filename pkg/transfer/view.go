package transfer

import (
	"strings"
)

// Filter is a case-insensitive substring match over display fields. With no
// Fields set every display field is searched.
type Filter struct {
	Query  string
	Fields []string
}

func (f Filter) Empty() bool {
	return strings.TrimSpace(f.Query) == ""
}

func (f Filter) Match(c Candidate) bool {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	fields := f.Fields
	if len(fields) == 0 {
		fields = c.FieldNames()
	}
	for _, name := range fields {
		if strings.Contains(strings.ToLower(c.Field(name)), q) {
			return true
		}
	}
	return false
}

// Apply keeps the ids whose candidate matches, preserving order. Ids without
// a candidate never match a non-empty query.
func (f Filter) Apply(ids []string, store *CandidateStore) []string {
	if f.Empty() {
		out := make([]string, len(ids))
		copy(out, ids)
		return out
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		c, ok := store.Get(id)
		if ok && f.Match(c) {
			out = append(out, id)
		}
	}
	return out
}

type Page struct {
	Number int      `json:"page"`
	Size   int      `json:"pageSize"`
	Pages  int      `json:"pages"`
	Total  int      `json:"total"`
	Keys   []string `json:"keys"`
}

// Paginate clamps number into [1, pages]. An empty list still has one page.
func Paginate(ids []string, number, size int) Page {
	if size <= 0 {
		size = len(ids)
		if size == 0 {
			size = 1
		}
	}
	pages := (len(ids) + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}
	start := (number - 1) * size
	end := start + size
	if end > len(ids) {
		end = len(ids)
	}
	keys := make([]string, end-start)
	copy(keys, ids[start:end])
	return Page{
		Number: number,
		Size:   size,
		Pages:  pages,
		Total:  len(ids),
		Keys:   keys,
	}
}

// Selection tracks checked rows of one list.
type Selection struct {
	keys map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{keys: map[string]struct{}{}}
}

func (s *Selection) Has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

func (s *Selection) Len() int {
	return len(s.keys)
}

func (s *Selection) Toggle(key string, selected bool) {
	if selected {
		s.keys[key] = struct{}{}
		return
	}
	delete(s.keys, key)
}

func (s *Selection) SelectAll(visible []string) {
	for _, key := range visible {
		s.keys[key] = struct{}{}
	}
}

func (s *Selection) Invert(visible []string) {
	for _, key := range visible {
		if s.Has(key) {
			delete(s.keys, key)
			continue
		}
		s.keys[key] = struct{}{}
	}
}

func (s *Selection) Clear() {
	s.keys = map[string]struct{}{}
}

// Retain drops every selected key that is not in ids.
func (s *Selection) Retain(ids []string) {
	keep := make(map[string]struct{}, len(s.keys))
	for _, id := range ids {
		if s.Has(id) {
			keep[id] = struct{}{}
		}
	}
	s.keys = keep
}

// Keys returns the selected keys in the order they appear in ids.
func (s *Selection) Keys(ids []string) []string {
	out := make([]string, 0, len(s.keys))
	for _, id := range ids {
		if s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
