package llm

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

// Legacy role labels used by upstream storage. They never reach the model:
// ingestion normalizes them into the canonical set above.
const (
	legacyRoleHuman MessageRole = "human"
	legacyRoleAI    MessageRole = "ai"
	legacyRoleTool  MessageRole = "tool"
)

// Normalize maps a stored role label onto the model-facing vocabulary.
// Tool output is attributed to the agent's turn, so "tool" folds into
// "assistant". Unknown labels pass through unchanged; context formatting
// must never be the reason a turn aborts.
func (r MessageRole) Normalize() MessageRole {
	switch r {
	case legacyRoleHuman:
		return MessageRoleUser
	case legacyRoleAI, legacyRoleTool:
		return MessageRoleAssistant
	default:
		return r
	}
}

func (r MessageRole) String() string {
	return string(r)
}

// Message is a single conversation entry. Immutable once created: ingestion
// builds a fresh value per persisted row and truncation only ever re-slices.
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp string      `json:"timestamp,omitempty"`
}
