package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aradsms/wa_sender/internal/wa_sender_service/domain"
	"github.com/google/uuid"
)

type entry struct {
	creds    domain.Credentials
	lastSeen time.Time
}

// Store keeps per-session credentials in process memory only. Nothing is ever written to disk.
// Sessions expire after ttl without activity.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

func NewStore(ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.With("component", "session_store"),
	}
}

// Create starts an empty session and returns its ID.
func (s *Store) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &entry{lastSeen: s.now()}
	s.mu.Unlock()
	return id
}

// Exists reports whether id names a live session, refreshing it if so.
func (s *Store) Exists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchLocked(id) != nil
}

// Credentials returns the session's credentials. Unknown or expired sessions yield the zero value.
func (s *Store) Credentials(id string) (domain.Credentials, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.touchLocked(id)
	if e == nil {
		return domain.Credentials{}, false
	}
	return e.creds, true
}

// SetCredentials replaces the session's credentials, creating the session if needed.
func (s *Store) SetCredentials(id string, creds domain.Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.touchLocked(id)
	if e == nil {
		e = &entry{lastSeen: s.now()}
		s.sessions[id] = e
	}
	e.creds = creds
}

// ClearCredentials forgets the session's credentials but keeps the session.
func (s *Store) ClearCredentials(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.touchLocked(id); e != nil {
		e.creds = domain.Credentials{}
	}
}

// Len returns the number of sessions, expired ones included until the next sweep.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Session janitor stopped")
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("Expired sessions evicted", "count", n)
			}
		}
	}
}

// touchLocked returns the live entry for id and refreshes it; expired entries are dropped. Caller holds mu.
func (s *Store) touchLocked(id string) *entry {
	if id == "" {
		return nil
	}
	e, ok := s.sessions[id]
	if !ok {
		return nil
	}
	now := s.now()
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil
	}
	e.lastSeen = now
	return e
}
