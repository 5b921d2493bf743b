package deskmates

import (
	"context"
	"strconv"
)

// ChatRequest is one message sent to a digital employee. EmployeeID is
// required; an empty ConversationID starts a new conversation.
type ChatRequest struct {
	Message        string   `json:"message"`
	EmployeeID     string   `json:"employeeId"`
	ConversationID string   `json:"conversationId,omitempty"`
	Stream         bool     `json:"stream,omitempty"`
	Temperature    *float64 `json:"temperature,omitempty"`
	MaxTokens      *int     `json:"maxTokens,omitempty"`
}

// ChatResult is the employee's full (non-streaming) reply.
type ChatResult struct {
	Response            string         `json:"response"`
	ConversationID      string         `json:"conversationId"`
	MessageID           string         `json:"messageId"`
	EmployeeID          string         `json:"employeeId,omitempty"`
	UserID              string         `json:"userId,omitempty"`
	ProcessingTime      float64        `json:"processingTime,omitempty"`
	TotalProcessingTime float64        `json:"totalProcessingTime,omitempty"`
	Timestamp           string         `json:"timestamp,omitempty"`
	ModelInfo           map[string]any `json:"modelInfo,omitempty"`
	Metadata            map[string]any `json:"metadata,omitempty"`
}

// Conversation is one chat thread between a user and an employee.
type Conversation struct {
	ConversationID string `json:"conversationId"`
	EmployeeID     string `json:"employeeId"`
	UserID         string `json:"userId,omitempty"`
	Title          string `json:"title,omitempty"`
	MessageCount   int    `json:"messageCount"`
	IsActive       bool   `json:"isActive"`
	CreatedAt      string `json:"createdAt,omitempty"`
	UpdatedAt      string `json:"updatedAt,omitempty"`
}

// ChatService sends messages to digital employees and lists conversations.
type ChatService struct {
	client *Client
}

// Send delivers a message and waits for the complete reply.
func (s *ChatService) Send(ctx context.Context, req *ChatRequest, opts ...RequestOption) (*ChatResult, error) {
	var env Response[ChatResult]
	if err := s.client.Post(ctx, "/chat/", req, &env, opts...); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// StreamMessage delivers a message and receives the reply incrementally: fn
// is invoked once per generated chunk, in order, until the stream ends. The
// call is single-attempt; see Client.Stream for the failure contract.
func (s *ChatService) StreamMessage(ctx context.Context, req *ChatRequest, fn StreamHandler, opts ...RequestOption) error {
	streamed := *req
	streamed.Stream = true
	return s.client.Stream(ctx, "/chat/stream", &streamed, fn, opts...)
}

// Conversations lists the current user's chat threads, optionally filtered
// by employee. limit <= 0 uses the server default.
func (s *ChatService) Conversations(ctx context.Context, employeeID string, limit int, opts ...RequestOption) ([]Conversation, error) {
	if employeeID != "" {
		opts = append(opts, WithQuery("employee_id", employeeID))
	}
	if limit > 0 {
		opts = append(opts, WithQuery("limit", strconv.Itoa(limit)))
	}

	var env Response[struct {
		Conversations []Conversation `json:"conversations"`
		Total         int            `json:"total"`
	}]
	if err := s.client.Get(ctx, "/chat/conversations", &env, opts...); err != nil {
		return nil, err
	}
	return env.Data.Conversations, nil
}
