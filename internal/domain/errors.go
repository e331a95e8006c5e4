package domain

import "errors"

var (
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest indicates invalid request
	ErrInvalidRequest = errors.New("invalid request")
	// ErrPreconditionUnmet indicates the current step does not allow moving forward
	ErrPreconditionUnmet = errors.New("step precondition not met")
	// ErrChatClosed indicates the chat panel is closed
	ErrChatClosed = errors.New("chat is closed")
)
