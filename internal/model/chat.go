package model

import (
	"time"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage represents one message in a case's chat transcript.
type ChatMessage struct {
	ID        string      `json:"id"`
	Role      Role        `json:"role"`
	Content   string      `json:"content"`
	Sources   []SourceRef `json:"sources,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// SourceRef cites the evidence item an assistant answer is grounded on.
type SourceRef struct {
	Evidence string `json:"evidence"`
	Page     string `json:"page,omitempty"`
	Excerpt  string `json:"excerpt"`
}

// SendChatRequest is the request to ask a question about a case.
type SendChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the backend's source-grounded answer.
type ChatResponse struct {
	Response string      `json:"response"`
	Sources  []SourceRef `json:"sources"`
}

// ChatHistoryResponse is the response for loading a case's transcript.
type ChatHistoryResponse struct {
	Messages []ChatMessage `json:"messages"`
}
