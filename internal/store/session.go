package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/docchat/internal/domain"
)

// SessionStore holds the chat sessions and the active selection. The
// whole collection is written to storage after every mutation; the active
// selection lives only in memory and resets to the first session on load.
type SessionStore struct {
	kv  domain.KeyValueStore
	key string
	now func() time.Time

	mu       sync.RWMutex
	sessions []domain.ChatSession
	activeID string
}

// SessionOption configures a SessionStore
type SessionOption func(*SessionStore)

// WithClock overrides the time source used for new sessions
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionStore) {
		s.now = now
	}
}

// LoadSessions reads the persisted session collection. An empty
// collection is reported as domain.ErrNotFound; unreadable data as
// domain.ErrPersistenceLoad.
func LoadSessions(ctx context.Context, kv domain.KeyValueStore, key string) ([]domain.ChatSession, error) {
	data, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistenceLoad, err)
	}

	var sessions []domain.ChatSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("%w: failed to parse sessions: %w", domain.ErrPersistenceLoad, err)
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistenceLoad, domain.ErrNotFound)
	}
	for i, s := range sessions {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: session %d has no id", domain.ErrPersistenceLoad, i)
		}
	}

	return sessions, nil
}

// NewSessionStore loads the persisted sessions, falling back to a single
// fresh session when nothing usable is stored.
func NewSessionStore(ctx context.Context, kv domain.KeyValueStore, key string, opts ...SessionOption) *SessionStore {
	s := &SessionStore{kv: kv, key: key, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	sessions, err := LoadSessions(ctx, kv, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Debug().Str("key", key).Msg("No persisted sessions, starting fresh")
		} else {
			log.Warn().Err(err).Str("key", key).Msg("Failed to load sessions, starting fresh")
		}
		sessions = []domain.ChatSession{domain.NewChatSession(s.now())}
	}

	s.sessions = sessions
	s.activeID = sessions[0].ID
	return s
}

// Sessions returns the sessions in storage order
func (s *SessionStore) Sessions() []domain.ChatSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ChatSession, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = sess.Clone()
	}
	return out
}

// Sorted returns the sessions most recently updated first
func (s *SessionStore) Sorted() []domain.ChatSession {
	out := s.Sessions()
	slices.SortStableFunc(out, func(a, b domain.ChatSession) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out
}

// Get returns the session with the given id
func (s *SessionStore) Get(id string) (domain.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.ChatSession{}, domain.ErrSessionNotFound
	}
	return s.sessions[i].Clone(), nil
}

// ActiveID returns the id of the active session
func (s *SessionStore) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Active returns the active session
func (s *SessionStore) Active() domain.ChatSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexLocked(s.activeID); i >= 0 {
		return s.sessions[i].Clone()
	}
	return s.sessions[0].Clone()
}

// Select makes the session with the given id active
func (s *SessionStore) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(id) < 0 {
		return domain.ErrSessionNotFound
	}
	s.activeID = id
	return nil
}

// Create inserts a fresh session at the front and makes it active
func (s *SessionStore) Create(ctx context.Context) (domain.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := domain.NewChatSession(s.now())
	s.sessions = append([]domain.ChatSession{session}, s.sessions...)
	s.activeID = session.ID

	return session.Clone(), s.persistLocked(ctx)
}

// Delete removes a session. Deleting the only session replaces it with a
// fresh one; deleting the active session activates the first remaining one.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.ErrSessionNotFound
	}

	if len(s.sessions) == 1 {
		fresh := domain.NewChatSession(s.now())
		s.sessions = []domain.ChatSession{fresh}
		s.activeID = fresh.ID
		return s.persistLocked(ctx)
	}

	s.sessions = slices.Delete(s.sessions, i, i+1)
	if id == s.activeID {
		s.activeID = s.sessions[0].ID
	}
	return s.persistLocked(ctx)
}

// Update replaces the session with the given id by transform's result.
// transform receives a copy and must keep the session id.
func (s *SessionStore) Update(ctx context.Context, id string, transform func(domain.ChatSession) domain.ChatSession) (domain.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.ChatSession{}, domain.ErrSessionNotFound
	}

	updated := transform(s.sessions[i].Clone())
	updated.ID = id
	s.sessions[i] = updated

	return updated.Clone(), s.persistLocked(ctx)
}

func (s *SessionStore) indexLocked(id string) int {
	return slices.IndexFunc(s.sessions, func(sess domain.ChatSession) bool {
		return sess.ID == id
	})
}

// persistLocked writes the whole collection. The in-memory state stays
// authoritative when the write fails.
func (s *SessionStore) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.sessions)
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save sessions: %w", err)
	}
	return nil
}
