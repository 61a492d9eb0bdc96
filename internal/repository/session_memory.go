// Package repository keeps live study sessions. Storage is in-memory
// and intentionally ephemeral: a session's quota and conversation
// history disappear when the session expires or the process stops.
package repository

import (
	"sync"

	"github.com/memomaster/backend/internal/config"
	"github.com/memomaster/backend/internal/entity"
	"github.com/memomaster/backend/internal/pkg/quota"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// StudySession is the live state of one session: its metadata, quota
// gate, and conversation history. The embedded mutex guards the
// history; the gate has its own lock.
type StudySession struct {
	entity.Session

	Quota *quota.Gate

	mu    sync.Mutex
	turns []entity.ConversationTurn
}

// Turns returns a snapshot of the conversation history in insertion order.
func (s *StudySession) Turns() []entity.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// TurnCount returns the number of turns recorded so far.
func (s *StudySession) TurnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// AppendPendingTurn records a new turn whose reply has not arrived yet
// and returns its index for later finalization.
func (s *StudySession) AppendPendingTurn(userMessage string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, entity.ConversationTurn{
		User:      userMessage,
		Assistant: entity.PendingReply,
	})
	return len(s.turns) - 1
}

// FinalizeTurn replaces the pending reply at index in place.
func (s *StudySession) FinalizeTurn(index int, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= 0 && index < len(s.turns) {
		s.turns[index].Assistant = reply
	}
}

// SessionStore is a TTL-bounded in-memory session registry.
type SessionStore struct {
	cache  *gocache.Cache
	logger *zap.Logger
}

func NewSessionStore(cfg config.SessionConfig, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		cache:  gocache.New(cfg.TTL, cfg.CleanupInterval),
		logger: logger,
	}
}

// Create registers a new live session. The quota gate is created here
// and never replaced: expiry of the whole session is the only reset.
func (s *SessionStore) Create(sess entity.Session) *StudySession {
	live := &StudySession{
		Session: sess,
		Quota:   quota.NewGate(sess.Limit),
	}
	s.cache.SetDefault(sess.ID, live)

	s.logger.Info("session created",
		zap.String("session_id", sess.ID),
		zap.Int("limit", sess.Limit),
	)

	return live
}

// Get returns the live session or entity.ErrSessionNotFound.
func (s *SessionStore) Get(id string) (*StudySession, error) {
	value, found := s.cache.Get(id)
	if !found {
		return nil, entity.ErrSessionNotFound
	}
	return value.(*StudySession), nil
}
