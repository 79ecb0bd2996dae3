package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dealdesk/dealdesk/engine/core"
	"github.com/dealdesk/dealdesk/engine/llm"
	"github.com/dealdesk/dealdesk/engine/llm/adapter"
	"github.com/dealdesk/dealdesk/engine/memory"
	"github.com/dealdesk/dealdesk/pkg/logger"
)

// Orchestrator wires the context manager, tier selector, escalation
// controller, and model client into a single turn loop. It holds no
// per-conversation state; every RunTurn is independent.
type Orchestrator struct {
	config     *Config
	contextMgr *memory.Manager
	selector   *llm.TierSelector
	escalation *llm.EscalationController
	client     adapter.Client
}

// TurnResult is the outcome of a completed turn.
type TurnResult struct {
	// TurnID correlates log entries for this turn.
	TurnID string
	// Content is the model's final reply text.
	Content string
	// Tier is the tool tier in effect when the invocation succeeded.
	Tier llm.Tier
	// Attempts counts model invocations, including escalation retries.
	Attempts int
	// Context is the bounded history that was sent to the model.
	Context memory.FormattedContext
}

// NewOrchestrator creates an orchestrator over the given collaborators.
func NewOrchestrator(
	contextMgr *memory.Manager,
	selector *llm.TierSelector,
	client adapter.Client,
	opts ...Option,
) (*Orchestrator, error) {
	if contextMgr == nil {
		return nil, core.NewError(fmt.Errorf("context manager cannot be nil"), llm.ErrCodeInvalidConfig, nil)
	}
	if selector == nil {
		return nil, core.NewError(fmt.Errorf("tier selector cannot be nil"), llm.ErrCodeInvalidConfig, nil)
	}
	if client == nil {
		return nil, core.NewError(fmt.Errorf("adapter client cannot be nil"), llm.ErrCodeInvalidConfig, nil)
	}
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Orchestrator{
		config:     config,
		contextMgr: contextMgr,
		selector:   selector,
		escalation: llm.NewEscalationController(),
		client:     client,
	}, nil
}

// RunTurn executes one conversation turn over the stored history. The tier
// from the intent classification is tried first; a tool-not-found-class
// failure widens the tier and retries, bounded by MaxEscalations and by the
// terminal complex tier. Any other failure propagates to the caller
// unchanged.
func (o *Orchestrator) RunTurn(
	ctx context.Context,
	records []memory.Record,
	intent llm.IntentClassification,
) (*TurnResult, error) {
	turnID := uuid.NewString()
	log := logger.FromContext(ctx).With("turn_id", turnID)

	formatted := o.contextMgr.LoadFromRecords(ctx, records)
	if formatted.WasTruncated {
		log.Info("Turn context truncated",
			"original_count", formatted.OriginalMessageCount,
			"sent_count", len(formatted.Messages),
			"token_count", formatted.TokenCount,
		)
	}

	tier := llm.TierComplex
	if intent.Complexity != nil && intent.Complexity.IsValid() {
		tier = *intent.Complexity
	}

	attempts := 0
	escalations := 0
	for {
		attempts++
		tools := o.selector.ToolsForComplexity(ctx, tier)
		req := o.buildRequest(formatted.Messages, tools)
		resp, err := o.client.Invoke(ctx, req)
		if err == nil {
			log.Debug("Turn completed", "tier", tier.String(), "attempts", attempts)
			return &TurnResult{
				TurnID:   turnID,
				Content:  resp.Content,
				Tier:     tier,
				Attempts: attempts,
				Context:  formatted,
			}, nil
		}

		decision := o.escalation.HandleToolEscalation(ctx, err, tier)
		if !decision.ShouldEscalate || escalations >= o.config.MaxEscalations {
			return nil, err
		}
		escalations++
		tier = decision.NextTier
	}
}

func (o *Orchestrator) buildRequest(msgs []llm.Message, tools []llm.Tool) *adapter.Request {
	wireMsgs := make([]adapter.Message, len(msgs))
	for i, msg := range msgs {
		wireMsgs[i] = adapter.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}
	defs := make([]adapter.ToolDefinition, len(tools))
	for i, tool := range tools {
		defs[i] = adapter.ToolDefinition{
			Name:        tool.Name,
			Description: tool.Description,
		}
	}
	return &adapter.Request{
		SystemPrompt: o.config.SystemPrompt,
		Messages:     wireMsgs,
		Tools:        defs,
	}
}
