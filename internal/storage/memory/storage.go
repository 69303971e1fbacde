package memory

import (
	"context"
	"sync"

	"github.com/mcoot/dragonword-go/internal/model"
	"github.com/mcoot/dragonword-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// The map is guarded by an RWMutex so lookups of one session never block
// behind a write to another. Sessions are cloned on both save and load,
// matching the redis backend's unmarshal-fresh behavior: callers never
// share a live object with the store or with each other.
type Storage struct {
	mu sync.RWMutex

	sessions  map[model.SessionID]*model.Session
	wordPairs []model.WordPair
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions: make(map[model.SessionID]*model.Session),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Storage) SessionExists(ctx context.Context, id model.SessionID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok, nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]*model.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session.Clone())
	}
	return sessions, nil
}

// Word pair operations

func (s *Storage) SaveWordPairs(ctx context.Context, pairs []model.WordPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wordPairs = make([]model.WordPair, len(pairs))
	copy(s.wordPairs, pairs)
	return nil
}

func (s *Storage) GetWordPairs(ctx context.Context) ([]model.WordPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.wordPairs == nil {
		return nil, model.ErrWordsNotLoaded
	}
	result := make([]model.WordPair, len(s.wordPairs))
	copy(result, s.wordPairs)
	return result, nil
}
