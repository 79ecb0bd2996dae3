package llm

import (
	"fmt"

	"github.com/dealdesk/dealdesk/engine/core"
)

// Error codes for LLM orchestration operations
const (
	// LLM interaction errors
	ErrCodeLLMGeneration   = "LLM_GENERATION_ERROR"
	ErrCodeInvalidResponse = "INVALID_LLM_RESPONSE"

	// Tool selection errors
	ErrCodeToolNotFound   = "TOOL_NOT_FOUND"
	ErrCodeToolExecution  = "TOOL_EXECUTION_ERROR"
	ErrCodeCatalogInvalid = "CATALOG_INVALID"
	ErrCodeTierConfig     = "TIER_CONFIG_ERROR"

	// Configuration errors
	ErrCodeInvalidConfig = "INVALID_CONFIGURATION"
)

// NewToolNotFoundError creates the failure the external invocation layer
// raises when the model requests a capability outside the exposed tier. The
// message wording matters: EscalationController classifies on it.
func NewToolNotFoundError(toolName string, tier Tier) error {
	return core.NewError(
		fmt.Errorf("tool %q not found in %s tier", toolName, tier),
		ErrCodeToolNotFound,
		map[string]any{
			"tool": toolName,
			"tier": tier.String(),
		},
	)
}

// NewToolError creates a tool execution error unrelated to tier sizing.
func NewToolError(err error, toolName string) error {
	return core.NewError(err, ErrCodeToolExecution, map[string]any{
		"tool": toolName,
	})
}
