package server

import (
	"context"
	"sync"
	"time"

	"github.com/matst80/slask-market/pkg/browse"
)

type sessionEntry struct {
	mu       sync.Mutex
	session  *browse.Session
	lastSeen time.Time
}

// SessionStore keeps one browse.Session per session id. Calls for the same
// id are serialised, different ids run in parallel.
type SessionStore struct {
	// MaxSessions caps the stored sessions, the least recently seen one is
	// evicted to make room. 0 means no cap.
	MaxSessions int

	mu       sync.Mutex
	source   browse.Source
	pageSize int
	ttl      time.Duration
	entries  map[string]*sessionEntry
	now      func() time.Time
}

func NewSessionStore(source browse.Source, pageSize int, ttl time.Duration) *SessionStore {
	return &SessionStore{
		source:   source,
		pageSize: pageSize,
		ttl:      ttl,
		entries:  make(map[string]*sessionEntry),
		now:      time.Now,
	}
}

func (s *SessionStore) entry(id string) (*sessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[id]; ok {
		e.lastSeen = s.now()
		return e, nil
	}
	session, err := browse.NewSession(s.source, s.pageSize)
	if err != nil {
		return nil, err
	}
	if s.MaxSessions > 0 && len(s.entries) >= s.MaxSessions {
		s.evictOldest()
	}
	e := &sessionEntry{session: session, lastSeen: s.now()}
	s.entries[id] = e
	activeSessions.Set(float64(len(s.entries)))
	return e, nil
}

func (s *SessionStore) evictOldest() {
	oldestId := ""
	var oldest time.Time
	for id, e := range s.entries {
		if oldestId == "" || e.lastSeen.Before(oldest) {
			oldestId, oldest = id, e.lastSeen
		}
	}
	delete(s.entries, oldestId)
	evictedSessions.Inc()
}

// With runs fn with the session for id, creating it on first use.
func (s *SessionStore) With(id string, fn func(*browse.Session) error) error {
	e, err := s.entry(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops sessions idle for longer than the ttl and returns how many
// were removed.
func (s *SessionStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	activeSessions.Set(float64(len(s.entries)))
	return removed
}

func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
