package types

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Message is one entry in a conversation transcript. Messages are immutable
// once created and ids are only unique within a session.
type Message struct {
	ID      string      `json:"id"`
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

type Conversation struct {
	ID        string     `json:"id"`
	Title     string     `json:"title,omitempty"`
	Messages  []*Message `json:"messages,omitempty"`
	UpdatedAt int64      `json:"updated_at,omitempty"`
}
