package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dealdesk/dealdesk/pkg/logger"
)

// toolNotFoundPatterns is the complete, centralized set of phrases that mark
// a failure as "the model called a capability outside the exposed tier".
// Matching is case-insensitive substring matching on the error message. The
// list is deliberately small and covered by its own exhaustive test: wording
// drift in the invocation layer is the known failure mode here.
var toolNotFoundPatterns = []string{
	"not found",
	"not a valid tool",
	"unknown tool",
	"no tool named",
}

// EscalationResult is the per-failure decision of the escalation controller.
type EscalationResult struct {
	ShouldEscalate bool
	NextTier       Tier
	Reason         string
}

// EscalationController decides whether a failed invocation should be retried
// at a wider tool tier. The state machine over Tier is
// simple -> medium -> complex, with complex terminal, so escalation is
// monotonic and terminates after at most two retries.
type EscalationController struct{}

// NewEscalationController creates an escalation controller.
func NewEscalationController() *EscalationController {
	return &EscalationController{}
}

// NextTier returns the successor tier in the escalation chain.
func (c *EscalationController) NextTier(tier Tier) Tier {
	return tier.Wider()
}

// CanEscalate reports whether a wider tier exists above the given one.
func (c *EscalationController) CanEscalate(tier Tier) bool {
	return tier == TierSimple || tier == TierMedium
}

// IsToolNotFoundError classifies a failure as tool-not-found-class. Only
// error values participate in escalation: nil and non-error values always
// classify as false.
func (c *EscalationController) IsToolNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range toolNotFoundPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// HandleToolEscalation computes the escalation decision for a failure that
// occurred while the given tier was in effect. Failures that are not
// tool-not-found-class never escalate; they must propagate to the caller
// unchanged.
func (c *EscalationController) HandleToolEscalation(ctx context.Context, err error, currentTier Tier) EscalationResult {
	if !c.IsToolNotFoundError(err) {
		return EscalationResult{
			ShouldEscalate: false,
			NextTier:       currentTier,
			Reason:         "failure is not a tool-not-found error",
		}
	}
	if !c.CanEscalate(currentTier) {
		return EscalationResult{
			ShouldEscalate: false,
			NextTier:       currentTier,
			Reason:         "already at maximum tier",
		}
	}
	next := c.NextTier(currentTier)
	result := EscalationResult{
		ShouldEscalate: true,
		NextTier:       next,
		Reason:         fmt.Sprintf("escalating tool tier %s -> %s", currentTier, next),
	}
	log := logger.FromContext(ctx)
	log.Warn("Tool tier escalation", "from", currentTier.String(), "to", next.String(), "error", err)
	if os.Getenv(TraceToolsEnv) != "" {
		log.Warn(fmt.Sprintf("[ToolLoader] escalating %s -> %s after tool-not-found failure", currentTier, next))
	}
	return result
}
