package repository

import (
	"context"

	"github.com/liliang-cn/claimwizard/internal/domain"
)

// SessionStore keeps session state containers for their lifetime.
// Get returns (nil, nil) for an unknown or expired id.
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// EvictFunc is called with the id of a session that expired
type EvictFunc func(id string)

func cloneSession(s *domain.Session) *domain.Session {
	c := *s
	c.Claim.Selected = append([]domain.Condition(nil), s.Claim.Selected...)
	c.Claim.Documents = append([]domain.Document(nil), s.Claim.Documents...)
	c.Chat.Messages = append([]domain.ChatMessage(nil), s.Chat.Messages...)
	return &c
}
