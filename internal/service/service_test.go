package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/liliang-cn/claimwizard/internal/assistant"
	"github.com/liliang-cn/claimwizard/internal/catalog"
	"github.com/liliang-cn/claimwizard/internal/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	sessions  *SessionService
	wizard    *WizardService
	chat      *ChatService
	catalog   *CatalogService
	scheduler *assistant.Scheduler
	store     repository.SessionStore
}

func newFixture(t *testing.T, delay time.Duration) *fixture {
	t.Helper()

	logger := zap.NewNop()
	scheduler := assistant.NewScheduler()
	cat := catalog.MustLoad()

	f := &fixture{scheduler: scheduler}
	// no cleanup interval: no janitor goroutine
	store := repository.NewMemorySessionStore(time.Hour, 0, func(id string) {
		f.sessions.Evicted(id)
	})
	f.store = store
	f.sessions = NewSessionService(store, scheduler, logger)
	f.wizard = NewWizardService(f.sessions, cat, logger)
	f.chat = NewChatService(f.sessions, scheduler, delay, logger)
	f.catalog = NewCatalogService(cat)

	t.Cleanup(func() {
		scheduler.Stop()
		store.Close()
	})
	return f
}

func (f *fixture) newSession(t *testing.T) string {
	t.Helper()
	id, created, err := f.sessions.Ensure(context.Background(), "")
	require.NoError(t, err)
	require.True(t, created)
	return id
}
