package llm

import "context"

type Message struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

type Client interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}
