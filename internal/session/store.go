// Package session keeps one market view state machine per browser.
package session

import (
	"sync"
	"time"

	"github.com/bobmcallan/market-portal/internal/common"
	"github.com/bobmcallan/market-portal/internal/view"
	"github.com/google/uuid"
)

// entry wraps a view session with expiry and insertion order tracking.
type entry struct {
	session   *view.Session
	expiry    time.Time
	insertIdx int64
}

// Store maps session IDs to view sessions. Entries expire after an idle TTL
// and the oldest entry is evicted at capacity. Discarded sessions have their
// pending loading transition cancelled.
type Store struct {
	mu         sync.RWMutex
	items      map[string]entry
	ttl        time.Duration
	maxEntries int
	nextIdx    int64

	clock  view.Clock
	delay  time.Duration
	now    func() time.Time
	logger *common.Logger
}

// New creates a Store whose sessions load after delay on clock.
func New(clock view.Clock, delay, ttl time.Duration, maxEntries int, logger *common.Logger) *Store {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &Store{
		items:      make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		clock:      clock,
		delay:      delay,
		now:        time.Now,
		logger:     logger,
	}
}

// Get returns the live session for id and extends its expiry.
func (s *Store) Get(id string) (*view.Session, bool) {
	if id == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[id]
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiry) {
		delete(s.items, id)
		e.session.Close()
		return nil, false
	}

	e.expiry = s.now().Add(s.ttl)
	s.items[id] = e
	return e.session, true
}

// Create starts a new session in the loading state and returns its ID.
func (s *Store) Create() (string, *view.Session) {
	id := uuid.New().String()
	sess := view.NewSession(s.clock, s.delay)
	if s.logger != nil {
		sess.OnReady(func() {
			s.logger.Debug().Str("session", id).Msg("market view ready")
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) >= s.maxEntries {
		s.evictOldest()
	}
	s.items[id] = entry{
		session:   sess,
		expiry:    s.now().Add(s.ttl),
		insertIdx: s.nextIdx,
	}
	s.nextIdx++

	return id, sess
}

// GetOrCreate returns the session for id, creating a fresh one when id is
// unknown or expired. created reports whether a new ID was issued.
func (s *Store) GetOrCreate(id string) (string, *view.Session, bool) {
	if sess, ok := s.Get(id); ok {
		return id, sess, false
	}
	newID, sess := s.Create()
	return newID, sess, true
}

// Len returns the number of tracked sessions, including expired ones not
// yet collected.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Purge removes every expired session and returns how many were removed.
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.items {
		if now.After(e.expiry) {
			delete(s.items, id)
			e.session.Close()
			removed++
		}
	}
	return removed
}

// Close discards every session.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.items {
		e.session.Close()
		delete(s.items, id)
	}
}

// evictOldest removes the entry with the lowest insertIdx. Must be called with mu held.
func (s *Store) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1

	for key, e := range s.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}

	if oldestKey != "" {
		s.items[oldestKey].session.Close()
		delete(s.items, oldestKey)
		if s.logger != nil {
			s.logger.Debug().Str("session", oldestKey).Msg("evicted oldest market session")
		}
	}
}
