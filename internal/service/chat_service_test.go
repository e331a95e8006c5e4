package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liliang-cn/claimwizard/internal/assistant"
	"github.com/liliang-cn/claimwizard/internal/domain"
)

func waitReply(t *testing.T, reply <-chan domain.ChatMessage) (domain.ChatMessage, bool) {
	t.Helper()
	select {
	case msg, ok := <-reply:
		return msg, ok
	case <-time.After(2 * time.Second):
		t.Fatal("reply channel not resolved")
		return domain.ChatMessage{}, false
	}
}

func TestChatService_SendRequiresOpen(t *testing.T) {
	f := newFixture(t, time.Millisecond)
	id := f.newSession(t)

	_, _, err := f.chat.Send(context.Background(), id, &domain.ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, domain.ErrChatClosed)
}

func TestChatService_RejectsBlank(t *testing.T) {
	f := newFixture(t, time.Millisecond)
	ctx := context.Background()
	id := f.newSession(t)
	_, err := f.chat.Open(ctx, id)
	require.NoError(t, err)

	_, _, err = f.chat.Send(ctx, id, &domain.ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestChatService_DeferredReply(t *testing.T) {
	f := newFixture(t, 10*time.Millisecond)
	ctx := context.Background()
	id := f.newSession(t)
	_, err := f.chat.Open(ctx, id)
	require.NoError(t, err)

	v, reply, err := f.chat.Send(ctx, id, &domain.ChatRequest{Message: "What documents do I need?"})
	require.NoError(t, err)
	assert.True(t, v.Typing)
	require.Len(t, v.Messages, 2)
	assert.Equal(t, domain.RoleUser, v.Messages[1].Role)

	msg, ok := waitReply(t, reply)
	require.True(t, ok)
	assert.Equal(t, assistant.EvidenceAnswer, msg.Content)
	assert.Equal(t, domain.RoleAssistant, msg.Role)

	v, err = f.chat.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, v.Typing)
	require.Len(t, v.Messages, 3)
	assert.Equal(t, assistant.EvidenceAnswer, v.Messages[2].Content)
}

func TestChatService_CloseSuppressesReply(t *testing.T) {
	f := newFixture(t, 50*time.Millisecond)
	ctx := context.Background()
	id := f.newSession(t)
	_, err := f.chat.Open(ctx, id)
	require.NoError(t, err)

	_, reply, err := f.chat.Send(ctx, id, &domain.ChatRequest{Message: "ptsd"})
	require.NoError(t, err)

	v, err := f.chat.Close(ctx, id)
	require.NoError(t, err)
	assert.False(t, v.Open)
	assert.False(t, v.Typing)

	// reopen before the original delay would have elapsed
	_, err = f.chat.Open(ctx, id)
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	v, err = f.chat.Get(ctx, id)
	require.NoError(t, err)
	assert.Len(t, v.Messages, 2, "greeting and user message only")

	_, ok := waitReply(t, reply)
	assert.False(t, ok, "cancelled reply closes the channel empty")
}

func TestChatService_StaleEpochDropped(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	id := f.newSession(t)
	_, err := f.chat.Open(ctx, id)
	require.NoError(t, err)

	// a reply scheduled for an earlier epoch races the close
	reply := make(chan domain.ChatMessage, 1)
	_, err = f.chat.Close(ctx, id)
	require.NoError(t, err)
	_, err = f.chat.Open(ctx, id)
	require.NoError(t, err)

	f.chat.deliver(id, 0, "late", reply)
	_, ok := <-reply
	assert.False(t, ok)

	v, err := f.chat.Get(ctx, id)
	require.NoError(t, err)
	assert.Len(t, v.Messages, 1)
}

func TestChatService_DisposedSessionDropsReply(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	id := f.newSession(t)
	require.NoError(t, f.sessions.Dispose(ctx, id))

	reply := make(chan domain.ChatMessage, 1)
	f.chat.deliver(id, 0, "late", reply)
	_, ok := <-reply
	assert.False(t, ok)
}

func TestChatService_Stream(t *testing.T) {
	f := newFixture(t, 5*time.Millisecond)
	ctx := context.Background()
	id := f.newSession(t)
	_, err := f.chat.Open(ctx, id)
	require.NoError(t, err)

	stream, err := f.chat.ChatStream(ctx, id, &domain.ChatRequest{Message: "how do I track my claim"})
	require.NoError(t, err)

	var types []string
	var content string
	for chunk := range stream {
		types = append(types, chunk.Type)
		if chunk.Type == "message" {
			content = chunk.Content
		}
	}
	assert.Equal(t, []string{"typing", "message", "done"}, types)
	assert.Equal(t, assistant.StatusAnswer, content)
}

func TestChatService_StreamEndsWithContext(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	id := f.newSession(t)
	_, err := f.chat.Open(ctx, id)
	require.NoError(t, err)

	stream, err := f.chat.ChatStream(ctx, id, &domain.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "typing", (<-stream).Type)

	cancel()
	for range stream {
	}
}

func TestChatService_StreamCancelledByClose(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	id := f.newSession(t)
	_, err := f.chat.Open(ctx, id)
	require.NoError(t, err)

	stream, err := f.chat.ChatStream(ctx, id, &domain.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "typing", (<-stream).Type)

	_, err = f.chat.Close(ctx, id)
	require.NoError(t, err)

	chunk := <-stream
	assert.Equal(t, "error", chunk.Type)
	_, open := <-stream
	assert.False(t, open)
}
