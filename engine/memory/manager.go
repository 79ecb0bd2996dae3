// Package memory turns arbitrary-length conversation history into a bounded,
// ordered, prompt-ready message sequence. It is the single authority for
// history truncation: a count cap first, a token cap second, and a hard
// 2-message floor that keeps the final exchange intact even over budget.
package memory

import (
	"context"
	"fmt"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"

	"github.com/dealdesk/dealdesk/engine/core"
	"github.com/dealdesk/dealdesk/engine/llm"
	"github.com/dealdesk/dealdesk/engine/memory/tokens"
	"github.com/dealdesk/dealdesk/pkg/logger"
)

// minMessagesFloor is the minimum number of messages truncation may leave.
// The most recent question/answer pair is load-bearing for conversational
// continuity: dropping it would make a follow-up like "and EBITDA?"
// uninterpretable.
const minMessagesFloor = 2

// ErrCodeContextConfig marks invalid context manager configuration.
const ErrCodeContextConfig = "CONTEXT_CONFIG_ERROR"

// ContextOptions configures a Manager. MaxMessages counts logical
// user/assistant exchanges, so the raw message cap is twice its value.
type ContextOptions struct {
	MaxMessages         int  `yaml:"max_messages"         json:"max_messages"         validate:"gt=0"`
	MaxTokens           int  `yaml:"max_tokens"           json:"max_tokens"           validate:"gt=0"`
	EnableSummarization bool `yaml:"enable_summarization" json:"enable_summarization"`
}

// DefaultContextOptions returns the process-wide defaults. Returned by value:
// every manager gets its own copy, so mutating one manager's options can
// never affect another's.
func DefaultContextOptions() ContextOptions {
	return ContextOptions{
		MaxMessages:         10,
		MaxTokens:           8000,
		EnableSummarization: false,
	}
}

// FormattedContext is the bounded, ordered sequence ready for model input,
// plus the metadata callers need to decide on summarization or warnings.
// Produced fresh on every call; never persisted.
type FormattedContext struct {
	Messages             []llm.Message
	TokenCount           int
	WasTruncated         bool
	OriginalMessageCount int
}

// Record is a persisted conversation row as storage hands it over. CreatedAt
// is trusted for ordering only and never parsed by truncation logic.
type Record struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// Manager is the conversation context manager. Safe for concurrent use
// across independent conversations as long as the token counter is not
// shared without external synchronization.
type Manager struct {
	options ContextOptions
	counter *tokens.Counter
}

// NewManager creates a manager with the given overrides merged over
// defaults. A nil overrides pointer selects the defaults unchanged.
func NewManager(ctx context.Context, counter *tokens.Counter, overrides *ContextOptions) (*Manager, error) {
	if counter == nil {
		return nil, core.NewError(fmt.Errorf("token counter cannot be nil"), ErrCodeContextConfig, nil)
	}
	options := DefaultContextOptions()
	if overrides != nil {
		merged := *overrides
		if err := mergo.Merge(&merged, options); err != nil {
			return nil, core.NewError(fmt.Errorf("failed to merge context options: %w", err), ErrCodeContextConfig, nil)
		}
		options = merged
	}
	if err := validator.New().Struct(&options); err != nil {
		return nil, core.NewError(err, ErrCodeContextConfig, nil)
	}
	log := logger.FromContext(ctx)
	log.Debug("Conversation context manager created",
		"max_messages", options.MaxMessages,
		"max_tokens", options.MaxTokens,
		"summarization", options.EnableSummarization,
	)
	return &Manager{options: options, counter: counter}, nil
}

// Options returns a copy of the manager's effective configuration.
func (m *Manager) Options() ContextOptions {
	return m.options
}

// FormatContext bounds a message sequence for model input. The count cap is
// applied first (most recent MaxMessages*2 entries), then the token cap
// (drop oldest while over MaxTokens and more than two messages remain).
// Relative order of retained messages is preserved exactly; removal is from
// the front only.
func (m *Manager) FormatContext(ctx context.Context, msgs []llm.Message) FormattedContext {
	original := len(msgs)
	kept := msgs

	maxRaw := m.options.MaxMessages * 2
	if len(kept) > maxRaw {
		kept = kept[len(kept)-maxRaw:]
	}
	kept = m.TruncateToFit(kept, m.options.MaxTokens)

	wasTruncated := len(kept) != original
	result := kept
	if wasTruncated && m.options.EnableSummarization {
		dropped := msgs[:original-len(kept)]
		summary := summarizeDropped(dropped)
		result = make([]llm.Message, 0, len(kept)+1)
		result = append(result, summary)
		result = append(result, kept...)
	}

	if wasTruncated {
		logger.FromContext(ctx).Debug("Conversation context truncated",
			"original_count", original,
			"kept_count", len(kept),
			"summarized", m.options.EnableSummarization,
		)
	}

	return FormattedContext{
		Messages:             result,
		TokenCount:           m.counter.CountMessages(result),
		WasTruncated:         wasTruncated,
		OriginalMessageCount: original,
	}
}

// LoadFromRecords normalizes persisted rows and delegates to FormatContext.
// Input order is preserved and assumed chronological. Malformed rows with
// missing content become empty-string messages; context formatting must
// never be the reason a turn aborts.
func (m *Manager) LoadFromRecords(ctx context.Context, records []Record) FormattedContext {
	if len(records) == 0 {
		return FormattedContext{Messages: []llm.Message{}}
	}
	msgs := make([]llm.Message, len(records))
	for i, rec := range records {
		msgs[i] = llm.Message{
			Role:      llm.MessageRole(rec.Role).Normalize(),
			Content:   rec.Content,
			Timestamp: rec.CreatedAt,
		}
	}
	return m.FormatContext(ctx, msgs)
}

// CountTokens exposes the manager's token accounting for a caller-supplied
// slice without truncating it.
func (m *Manager) CountTokens(msgs []llm.Message) int {
	return m.counter.CountMessages(msgs)
}

// TruncateToFit removes messages from the front, oldest first, until the
// remaining sequence fits the token budget or only two messages remain,
// whichever comes first. A sequence already within budget is returned
// unchanged.
func (m *Manager) TruncateToFit(msgs []llm.Message, tokenBudget int) []llm.Message {
	kept := msgs
	for m.counter.CountMessages(kept) > tokenBudget && len(kept) > minMessagesFloor {
		kept = kept[1:]
	}
	return kept
}
