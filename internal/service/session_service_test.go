package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liliang-cn/claimwizard/internal/assistant"
	"github.com/liliang-cn/claimwizard/internal/claim"
	"github.com/liliang-cn/claimwizard/internal/domain"
)

func TestSessionService_Ensure(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()

	id := f.newSession(t)

	again, created, err := f.sessions.Ensure(ctx, id)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, again)

	other, created, err := f.sessions.Ensure(ctx, "unknown")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, "unknown", other)

	n, err := f.sessions.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSessionService_NewSessionState(t *testing.T) {
	f := newFixture(t, time.Hour)
	id := f.newSession(t)

	s, err := f.sessions.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, claim.StepSelect, s.Claim.Step)
	assert.Empty(t, s.Claim.Selected)
	assert.Empty(t, s.Claim.Documents)
	assert.False(t, s.Chat.Open)
	require.Len(t, s.Chat.Messages, 1)
	assert.Equal(t, assistant.Greeting, s.Chat.Messages[0].Content)
	_, err = time.Parse(time.RFC3339, s.Chat.Messages[0].Timestamp)
	assert.NoError(t, err)
}

func TestSessionService_UpdateErrorDoesNotSave(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	id := f.newSession(t)

	boom := errors.New("boom")
	_, err := f.sessions.Update(ctx, id, func(s *domain.Session) error {
		s.Claim.Step = 3
		return boom
	})
	assert.ErrorIs(t, err, boom)

	s, err := f.sessions.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Claim.Step)
}

func TestSessionService_Dispose(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	id := f.newSession(t)

	_, err := f.chat.Open(ctx, id)
	require.NoError(t, err)
	_, _, err = f.chat.Send(ctx, id, &domain.ChatRequest{Message: "status?"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.scheduler.Pending(id))

	require.NoError(t, f.sessions.Dispose(ctx, id))
	assert.Equal(t, 0, f.scheduler.Pending(id))

	_, err = f.sessions.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
