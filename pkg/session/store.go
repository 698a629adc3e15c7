package session

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Entry is one open session. Do serializes all access to the value.
type Entry[T any] struct {
	mu      sync.Mutex
	id      string
	value   T
	expires time.Time
	closed  bool
}

func (e *Entry[T]) ID() string {
	return e.id
}

// Do runs fn with exclusive access to the value. It returns ErrNotFound if
// the entry was closed while waiting for the lock.
func (e *Entry[T]) Do(fn func(v T) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrNotFound
	}
	return fn(e.value)
}

func (e *Entry[T]) close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}

// Store keeps sessions in memory with a sliding TTL.
type Store[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*Entry[T]
}

func NewStore[T any](ttl time.Duration) *Store[T] {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store[T]{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]*Entry[T]{},
	}
}

func (s *Store[T]) Create(value T) *Entry[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	e := &Entry[T]{
		id:      uuid.NewString(),
		value:   value,
		expires: s.now().Add(s.ttl),
	}
	s.entries[e.id] = e
	return e
}

// Get returns the entry and extends its lifetime.
func (s *Store[T]) Get(id string) (*Entry[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, id)
		go e.close()
		return nil, ErrNotFound
	}
	e.expires = s.now().Add(s.ttl)
	return e, nil
}

func (s *Store[T]) Delete(id string) bool {
	s.mu.Lock()
	e, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()
	if ok {
		e.close()
	}
	return ok
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops expired sessions and returns how many were dropped.
func (s *Store[T]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *Store[T]) sweepLocked() int {
	now := s.now()
	n := 0
	for id, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, id)
			go e.close()
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done. after, when set, is called
// with the number of dropped sessions after each sweep.
func (s *Store[T]) Run(ctx context.Context, interval time.Duration, after func(dropped int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := s.Sweep()
			if after != nil {
				after(n)
			}
		}
	}
}
