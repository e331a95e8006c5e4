package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/liliang-cn/claimwizard/internal/assistant"
	"github.com/liliang-cn/claimwizard/internal/claim"
	"github.com/liliang-cn/claimwizard/internal/domain"
	"github.com/liliang-cn/claimwizard/internal/repository"
)

// SessionService owns the session state containers. Every mutation of a
// session runs under that session's lock, so handlers for one session
// never interleave.
type SessionService struct {
	store     repository.SessionStore
	scheduler *assistant.Scheduler
	logger    *zap.Logger
	now       func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSessionService creates a new session service
func NewSessionService(
	store repository.SessionStore,
	scheduler *assistant.Scheduler,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		store:     store,
		scheduler: scheduler,
		logger:    logger,
		now:       time.Now,
		locks:     make(map[string]*sync.Mutex),
	}
}

// NewSession returns a fresh state container: wizard at step one, empty
// selection and documents, chat closed with the greeting.
func NewSession(id string, now time.Time) *domain.Session {
	return &domain.Session{
		ID:    id,
		Claim: claim.NewState(),
		Chat: domain.ChatState{
			Messages: []domain.ChatMessage{{
				Role:      domain.RoleAssistant,
				Content:   assistant.Greeting,
				Timestamp: now.UTC().Format(time.RFC3339),
			}},
		},
	}
}

// Ensure returns the id of a live session: id itself when it is known,
// a freshly created one otherwise.
func (s *SessionService) Ensure(ctx context.Context, id string) (string, bool, error) {
	if id != "" {
		session, err := s.store.Get(ctx, id)
		if err != nil {
			return "", false, fmt.Errorf("failed to load session: %w", err)
		}
		if session != nil {
			return id, false, nil
		}
	}

	session := NewSession(uuid.New().String(), s.now())
	if err := s.store.Save(ctx, session); err != nil {
		return "", false, fmt.Errorf("failed to create session: %w", err)
	}
	s.logger.Debug("session created", zap.String("session_id", session.ID))
	return session.ID, true, nil
}

// Get returns a snapshot of the session
func (s *SessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	lock := s.lock(id)
	lock.Lock()
	defer lock.Unlock()

	return s.load(ctx, id)
}

// Update runs fn on the session under its lock and saves the result when
// fn succeeds.
func (s *SessionService) Update(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error) {
	lock := s.lock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// Dispose cancels deferred work of the session and deletes it
func (s *SessionService) Dispose(ctx context.Context, id string) error {
	lock := s.lock(id)
	lock.Lock()
	defer lock.Unlock()

	s.scheduler.CancelSession(id)
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.forget(id)
	s.logger.Debug("session disposed", zap.String("session_id", id))
	return nil
}

// Evicted releases resources of a session the store expired
func (s *SessionService) Evicted(id string) {
	if n := s.scheduler.CancelSession(id); n > 0 {
		s.logger.Debug("cancelled replies of expired session",
			zap.String("session_id", id),
			zap.Int("cancelled", n),
		)
	}
	s.forget(id)
}

// Count returns the number of live sessions
func (s *SessionService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

func (s *SessionService) load(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	s.reconcile(session)
	return session, nil
}

// reconcile drops pending reply counts that have no scheduled task behind
// them. Timers do not survive a restart or a failed delivery, the stored
// counter does.
func (s *SessionService) reconcile(session *domain.Session) {
	live := s.scheduler.Pending(session.ID)
	if session.Chat.Pending <= live {
		return
	}
	s.logger.Debug("dropping orphaned pending replies",
		zap.String("session_id", session.ID),
		zap.Int("stored", session.Chat.Pending),
		zap.Int("live", live),
	)
	session.Chat.Pending = live
}

func (s *SessionService) lock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *SessionService) forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, id)
}
