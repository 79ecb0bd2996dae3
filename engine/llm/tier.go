package llm

import "fmt"

// Tier names a capability-surface size, totally ordered
// simple < medium < complex.
type Tier string

const (
	TierSimple  Tier = "simple"
	TierMedium  Tier = "medium"
	TierComplex Tier = "complex"
)

func (t Tier) String() string {
	return string(t)
}

// IsValid reports whether t is one of the three defined tiers.
func (t Tier) IsValid() bool {
	switch t {
	case TierSimple, TierMedium, TierComplex:
		return true
	default:
		return false
	}
}

// Wider returns the next tier in the escalation chain. Complex is terminal:
// widening it yields complex again, making repeated application a fixed point.
func (t Tier) Wider() Tier {
	switch t {
	case TierSimple:
		return TierMedium
	case TierMedium:
		return TierComplex
	default:
		return TierComplex
	}
}

// ParseTier converts a config or classification label into a Tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid tier %q, must be one of: simple, medium, complex", s)
	}
	return t, nil
}
