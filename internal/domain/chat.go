package domain

// Chat roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one entry of the append-only chat log
type ChatMessage struct {
	Role      string `json:"role"` // user, assistant
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"` // RFC 3339
}

// ChatState is the chat panel part of a session
type ChatState struct {
	Open     bool          `json:"open"`
	Pending  int           `json:"pending"`
	Epoch    int           `json:"epoch"`
	Messages []ChatMessage `json:"messages"`
}

// Typing reports whether an assistant reply is outstanding
func (c ChatState) Typing() bool {
	return c.Pending > 0
}

// ChatRequest is the request to send a chat message
type ChatRequest struct {
	Message string `json:"message" form:"message" binding:"required"`
}

// ChatView is the response shape of the chat API
type ChatView struct {
	Open     bool          `json:"open"`
	Typing   bool          `json:"typing"`
	Messages []ChatMessage `json:"messages"`
}

// StreamChunk represents a chunk in SSE stream
type StreamChunk struct {
	Type    string       `json:"type"` // typing, message, done, error
	Content string       `json:"content,omitempty"`
	Message *ChatMessage `json:"message,omitempty"`
}
