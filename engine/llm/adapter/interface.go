// Package adapter defines the provider-independent contract between the
// orchestration layer and the external model invocation. The invocation
// itself (prompt plus tools in, text or tool calls out) is a black box
// owned by the caller.
package adapter

import (
	"context"
	"encoding/json"
)

// Role constants for message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a conversation message in the wire shape the invocation
// layer expects.
type Message struct {
	Role    string
	Content string
}

// ToolDefinition represents a tool advertised to the model.
type ToolDefinition struct {
	Name        string
	Description string
}

// Request represents a single model invocation, independent of provider.
type Request struct {
	SystemPrompt string
	Messages     []Message
	Tools        []ToolDefinition
}

// ToolCall represents a tool invocation request emitted by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// Response represents the model's reply.
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// Client invokes the external model. Implementations own transport, retries
// below the tier-escalation layer, and cancellation via ctx.
type Client interface {
	Invoke(ctx context.Context, req *Request) (*Response, error)
}
