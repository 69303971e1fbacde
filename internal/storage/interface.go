package storage

import (
	"context"

	"github.com/mcoot/dragonword-go/internal/model"
)

// Storage defines the interface for session and word-pair persistence.
//
// Sessions are written whole: callers load a session, mutate it under the
// controller's per-session lock and save it back. Implementations only need
// to make individual operations safe for concurrent use.
type Storage interface {
	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	SessionExists(ctx context.Context, id model.SessionID) (bool, error)
	ListSessions(ctx context.Context) ([]*model.Session, error)

	// Word pair operations
	SaveWordPairs(ctx context.Context, pairs []model.WordPair) error
	GetWordPairs(ctx context.Context) ([]model.WordPair, error)
}
