package agent

import (
	"context"

	"github.com/dealdesk/dealdesk/engine/llm"
	"github.com/dealdesk/dealdesk/engine/llm/adapter"
	"github.com/dealdesk/dealdesk/engine/memory"
	"github.com/dealdesk/dealdesk/engine/memory/tokens"
	"github.com/dealdesk/dealdesk/pkg/config"
)

// NewFromConfig assembles an orchestrator from application configuration.
// The tool catalog and model client stay caller-owned. The returned cleanup
// releases the token counter's encoder table; the orchestrator keeps working
// after cleanup on the heuristic estimator.
func NewFromConfig(
	ctx context.Context,
	cfg *config.Config,
	catalog *llm.Catalog,
	client adapter.Client,
) (*Orchestrator, func() error, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	counter, err := tokens.NewCounter(cfg.Tools.Encoding)
	if err != nil {
		return nil, nil, err
	}
	contextMgr, err := memory.NewManager(ctx, counter, &memory.ContextOptions{
		MaxMessages:         cfg.Context.MaxMessages,
		MaxTokens:           cfg.Context.MaxTokens,
		EnableSummarization: cfg.Context.EnableSummarization,
	})
	if err != nil {
		_ = counter.Close()
		return nil, nil, err
	}
	selector, err := llm.NewTierSelector(catalog, cfg.Tools.MediumTools)
	if err != nil {
		_ = counter.Close()
		return nil, nil, err
	}
	orchestrator, err := NewOrchestrator(contextMgr, selector, client,
		WithSystemPrompt(cfg.Agent.SystemPrompt),
		WithMaxEscalations(cfg.Agent.MaxEscalations),
	)
	if err != nil {
		_ = counter.Close()
		return nil, nil, err
	}
	return orchestrator, counter.Close, nil
}
