package api

import (
	"context"
	"net/http"

	"github.com/plaide-ai/intake/internal/model"
)

// ChatClient provides typed operations on a case's chat.
type ChatClient struct {
	transport *Transport
}

// NewChatClient creates a chat client.
func NewChatClient(t *Transport) *ChatClient {
	return &ChatClient{transport: t}
}

// Send asks a question about a case and returns the source-grounded answer.
func (c *ChatClient) Send(ctx context.Context, caseID, message string) (*model.ChatResponse, error) {
	if caseID == "" {
		return nil, validationErrorf("case id is required")
	}

	var resp model.ChatResponse
	req := &model.SendChatRequest{Message: message}
	if err := c.transport.Do(ctx, http.MethodPost, "/api/cases/"+caseID+"/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History fetches the authoritative transcript for a case.
func (c *ChatClient) History(ctx context.Context, caseID string) ([]model.ChatMessage, error) {
	if caseID == "" {
		return nil, validationErrorf("case id is required")
	}

	var resp model.ChatHistoryResponse
	if err := c.transport.Do(ctx, http.MethodGet, "/api/cases/"+caseID+"/chat/history", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// Clear deletes the backend transcript for a case.
func (c *ChatClient) Clear(ctx context.Context, caseID string) error {
	if caseID == "" {
		return validationErrorf("case id is required")
	}
	return c.transport.Do(ctx, http.MethodDelete, "/api/cases/"+caseID+"/chat/history", nil, nil)
}
