// Package state keeps track of what each user is in the middle of
// doing between messages. It is a soft, in-process session cache: state
// survives until replaced or cleared, never across restarts.
package state

import "sync"

// Tag labels the pending flow a user is in.
type Tag string

// Entry is the single (tag, payload) slot a user can hold.
type Entry struct {
	Tag     Tag
	Payload any
}

// Store is a concurrency-safe per-user state map. Overlapping writes
// for the same user resolve last-write-wins.
type Store struct {
	mu      sync.RWMutex
	entries map[int64]Entry
}

// New creates an empty store.
func New() *Store {
	return &Store{entries: make(map[int64]Entry)}
}

// Set replaces the user's state wholesale.
func (s *Store) Set(userID int64, tag Tag, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = Entry{Tag: tag, Payload: payload}
}

// Get returns the user's current state, if any.
func (s *Store) Get(userID int64) (Tag, any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[userID]
	return entry.Tag, entry.Payload, ok
}

// Clear removes the user's state; clearing absent state is a no-op.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
}
