package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/liliang-cn/claimwizard/internal/assistant"
	"github.com/liliang-cn/claimwizard/internal/domain"
	"github.com/liliang-cn/claimwizard/internal/view"
)

// ChatService handles the scripted chat panel of a session
type ChatService struct {
	sessions  *SessionService
	scheduler *assistant.Scheduler
	delay     time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewChatService creates a new chat service. Replies are appended delay
// after the user message.
func NewChatService(
	sessions *SessionService,
	scheduler *assistant.Scheduler,
	delay time.Duration,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		sessions:  sessions,
		scheduler: scheduler,
		delay:     delay,
		logger:    logger,
		now:       time.Now,
	}
}

// Get returns the chat panel state
func (s *ChatService) Get(ctx context.Context, sessionID string) (*domain.ChatView, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	v := view.Chat(session.Chat)
	return &v, nil
}

// Open shows the chat panel
func (s *ChatService) Open(ctx context.Context, sessionID string) (*domain.ChatView, error) {
	session, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.Chat.Open = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	v := view.Chat(session.Chat)
	return &v, nil
}

// Close hides the chat panel and drops any reply still pending
func (s *ChatService) Close(ctx context.Context, sessionID string) (*domain.ChatView, error) {
	session, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		if n := s.scheduler.CancelSession(sessionID); n > 0 {
			s.logger.Debug("cancelled pending replies",
				zap.String("session_id", sessionID),
				zap.Int("cancelled", n),
			)
		}
		sess.Chat.Open = false
		sess.Chat.Pending = 0
		sess.Chat.Epoch++
		return nil
	})
	if err != nil {
		return nil, err
	}
	v := view.Chat(session.Chat)
	return &v, nil
}

// Send appends the user message and schedules the scripted reply. The
// returned channel yields the reply once it is appended and is closed
// afterwards, or closed without a value when the reply is dropped.
func (s *ChatService) Send(ctx context.Context, sessionID string, req *domain.ChatRequest) (*domain.ChatView, <-chan domain.ChatMessage, error) {
	text := req.Message
	if strings.TrimSpace(text) == "" {
		return nil, nil, fmt.Errorf("empty message: %w", domain.ErrInvalidRequest)
	}

	reply := make(chan domain.ChatMessage, 1)
	var task *assistant.Task
	session, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		if !sess.Chat.Open {
			return domain.ErrChatClosed
		}
		sess.Chat.Messages = append(sess.Chat.Messages, domain.ChatMessage{
			Role:      domain.RoleUser,
			Content:   text,
			Timestamp: s.timestamp(),
		})

		epoch := sess.Chat.Epoch
		task = s.scheduler.ScheduleOrCancel(sessionID, s.delay, func() {
			s.deliver(sessionID, epoch, assistant.Respond(text), reply)
		}, func() {
			close(reply)
		})
		if task == nil {
			// shutting down
			close(reply)
			return nil
		}
		sess.Chat.Pending++
		return nil
	})
	if err != nil {
		// the user message was not saved, so neither is its reply
		if task != nil {
			task.Cancel()
		}
		return nil, nil, err
	}

	v := view.Chat(session.Chat)
	return &v, reply, nil
}

// ChatStream sends a message and streams the typing state, the reply and
// completion as chunks. The stream ends early when ctx is done.
func (s *ChatService) ChatStream(ctx context.Context, sessionID string, req *domain.ChatRequest) (<-chan domain.StreamChunk, error) {
	_, reply, err := s.Send(ctx, sessionID, req)
	if err != nil {
		return nil, err
	}

	ch := make(chan domain.StreamChunk, 4)
	go func() {
		defer close(ch)
		ch <- domain.StreamChunk{Type: "typing"}

		select {
		case msg, ok := <-reply:
			if !ok {
				ch <- domain.StreamChunk{Type: "error", Content: "reply cancelled"}
				return
			}
			ch <- domain.StreamChunk{Type: "message", Content: msg.Content, Message: &msg}
			ch <- domain.StreamChunk{Type: "done"}
		case <-ctx.Done():
		}
	}()
	return ch, nil
}

// deliver appends a reply unless the chat was closed or the session
// disposed since it was scheduled.
func (s *ChatService) deliver(sessionID string, epoch int, answer string, reply chan<- domain.ChatMessage) {
	defer close(reply)

	msg := domain.ChatMessage{
		Role:      domain.RoleAssistant,
		Content:   answer,
		Timestamp: s.timestamp(),
	}
	delivered := false
	_, err := s.sessions.Update(context.Background(), sessionID, func(sess *domain.Session) error {
		if !sess.Chat.Open || sess.Chat.Epoch != epoch {
			return nil
		}
		sess.Chat.Messages = append(sess.Chat.Messages, msg)
		if sess.Chat.Pending > 0 {
			sess.Chat.Pending--
		}
		delivered = true
		return nil
	})
	if err != nil {
		s.logger.Debug("reply dropped", zap.String("session_id", sessionID), zap.Error(err))
		return
	}
	if delivered {
		reply <- msg
	}
}

func (s *ChatService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
