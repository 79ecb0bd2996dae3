package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dealdesk/dealdesk/engine/core"
	"github.com/dealdesk/dealdesk/pkg/logger"
)

// TraceToolsEnv gates tier-resolution trace lines. The traces are an
// observability side channel only; nothing parses them programmatically.
const TraceToolsEnv = "DEALDESK_TRACE_TOOLS"

// IntentClassification is the externally-produced classification for a turn.
// Complexity is optional: older classifiers omit it, and the selector then
// grants the full surface rather than silently under-provisioning.
type IntentClassification struct {
	Intent     string  `json:"intent"`
	Complexity *Tier   `json:"complexity,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Method     string  `json:"method,omitempty"`
}

// TierSelector deterministically maps a complexity tier onto a tool subset:
// simple exposes no tools, medium a fixed curated subset, complex the whole
// catalog. Selection is pure; the catalog is never mutated.
type TierSelector struct {
	catalog *Catalog
	// curated holds the canonical medium-tier names in declaration order.
	curated []string
}

// NewTierSelector builds a selector over the full catalog plus the curated
// medium-tier subset. Every curated name must exist in the catalog; this is
// checked here rather than assumed at selection time.
func NewTierSelector(catalog *Catalog, mediumToolNames []string) (*TierSelector, error) {
	if catalog == nil {
		return nil, core.NewError(fmt.Errorf("catalog cannot be nil"), ErrCodeTierConfig, nil)
	}
	curated := make([]string, 0, len(mediumToolNames))
	for _, name := range mediumToolNames {
		if !catalog.Has(name) {
			return nil, core.NewError(
				fmt.Errorf("curated tool %q does not exist in the catalog", name),
				ErrCodeTierConfig,
				map[string]any{"tool": name},
			)
		}
		curated = append(curated, canonicalToolName(name))
	}
	return &TierSelector{catalog: catalog, curated: curated}, nil
}

// ToolsForComplexity resolves a tier to its tool subset. Complex returns the
// catalog in its original length and order.
func (s *TierSelector) ToolsForComplexity(ctx context.Context, tier Tier) []Tool {
	tools := s.resolve(tier)
	s.trace(ctx, tier, len(tools), false)
	return tools
}

// ToolCountForComplexity returns the subset size without materializing tool
// values. Must always equal len(ToolsForComplexity(tier)).
func (s *TierSelector) ToolCountForComplexity(tier Tier) int {
	switch tier {
	case TierSimple:
		return 0
	case TierMedium:
		return len(s.curated)
	default:
		return s.catalog.Len()
	}
}

// ToolsForIntent resolves the tool subset for an externally-produced intent
// classification. A missing complexity field defaults to complex: when the
// system cannot prove a narrower surface is safe, it grants the full one.
func (s *TierSelector) ToolsForIntent(ctx context.Context, intent IntentClassification) []Tool {
	tier := TierComplex
	if intent.Complexity != nil && intent.Complexity.IsValid() {
		tier = *intent.Complexity
	}
	tools := s.resolve(tier)
	s.trace(ctx, tier, len(tools), false)
	return tools
}

func (s *TierSelector) resolve(tier Tier) []Tool {
	switch tier {
	case TierSimple:
		return []Tool{}
	case TierMedium:
		tools := make([]Tool, 0, len(s.curated))
		for _, name := range s.curated {
			if t, ok := s.catalog.Find(name); ok {
				tools = append(tools, t)
			}
		}
		return tools
	default:
		return s.catalog.All()
	}
}

// trace emits the low-cardinality tier-resolution trace when enabled. Logging
// only; never affects the returned value.
func (s *TierSelector) trace(ctx context.Context, tier Tier, count int, escalated bool) {
	if os.Getenv(TraceToolsEnv) == "" {
		return
	}
	log := logger.FromContext(ctx)
	log.Debug(fmt.Sprintf("[ToolLoader] resolved %d tools for tier %s", count, tier))
	meta, err := json.Marshal(map[string]any{
		"tier":       tier.String(),
		"tool_count": count,
		"escalated":  escalated,
	})
	if err != nil {
		return
	}
	log.Debug(fmt.Sprintf("[LangSmith] Tool tier metadata %s", meta))
}
