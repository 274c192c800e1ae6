package repository

import (
	"context"
	"sync"
	"time"

	"resume-chatbot/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MemorySessionStore keeps sessions in process memory. States are copied on
// the way in and out so no two callers ever share a record.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.SessionState
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionStore expires sessions idle for longer than ttl. A ttl of
// zero keeps them forever.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[uuid.UUID]*domain.SessionState),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Get(_ context.Context, id uuid.UUID) (*domain.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[id]
	if !ok || s.expired(st) {
		return nil, domain.ErrSessionNotFound
	}
	return st.Clone(), nil
}

func (s *MemorySessionStore) Save(_ context.Context, st *domain.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[st.ID] = st.Clone()
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Sweep drops expired sessions and reports how many were removed.
func (s *MemorySessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, st := range s.sessions {
		if s.expired(st) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is cancelled.
func (s *MemorySessionStore) Run(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Debug().Int("removed", n).Msg("expired sessions swept")
			}
		}
	}
}

func (s *MemorySessionStore) expired(st *domain.SessionState) bool {
	return s.ttl > 0 && s.now().Sub(st.UpdatedAt) > s.ttl
}
