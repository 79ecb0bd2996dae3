package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscalationController_IsToolNotFoundError(t *testing.T) {
	controller := NewEscalationController()

	t.Run("Should classify every known pattern case-insensitively", func(t *testing.T) {
		cases := []struct {
			message string
			want    bool
		}{
			{`Tool "web_search" not found in simple tier`, true},
			{`NOT FOUND: web_search`, true},
			{`"fetch_url" is Not A Valid Tool`, true},
			{`unknown tool requested by model`, true},
			{`there is no tool named fetch_url`, true},
			{`connection reset by peer`, false},
			{`rate limit exceeded`, false},
			{`context deadline exceeded`, false},
			{`tool execution failed: timeout`, false},
			{``, false},
		}
		for _, tc := range cases {
			assert.Equal(t, tc.want, controller.IsToolNotFoundError(errors.New(tc.message)), "%q", tc.message)
		}
	})

	t.Run("Should return false for nil", func(t *testing.T) {
		assert.False(t, controller.IsToolNotFoundError(nil))
	})

	t.Run("Should classify the structured tool-not-found error", func(t *testing.T) {
		err := NewToolNotFoundError("redline_compare", TierSimple)
		assert.True(t, controller.IsToolNotFoundError(err))
	})

	t.Run("Should see the pattern through error wrapping", func(t *testing.T) {
		err := fmt.Errorf("invocation failed: %w", NewToolNotFoundError("x", TierMedium))
		assert.True(t, controller.IsToolNotFoundError(err))
	})
}

func TestEscalationController_CanEscalate(t *testing.T) {
	controller := NewEscalationController()

	t.Run("Should allow escalation from simple and medium only", func(t *testing.T) {
		assert.True(t, controller.CanEscalate(TierSimple))
		assert.True(t, controller.CanEscalate(TierMedium))
		assert.False(t, controller.CanEscalate(TierComplex))
	})
}

func TestEscalationController_HandleToolEscalation(t *testing.T) {
	ctx := context.Background()
	controller := NewEscalationController()
	notFound := errors.New(`Tool "web_search" not found`)

	t.Run("Should escalate medium to complex on a tool-not-found failure", func(t *testing.T) {
		result := controller.HandleToolEscalation(ctx, notFound, TierMedium)
		assert.True(t, result.ShouldEscalate)
		assert.Equal(t, TierComplex, result.NextTier)
		assert.Contains(t, result.Reason, "medium -> complex")
	})

	t.Run("Should escalate simple to medium", func(t *testing.T) {
		result := controller.HandleToolEscalation(ctx, notFound, TierSimple)
		assert.True(t, result.ShouldEscalate)
		assert.Equal(t, TierMedium, result.NextTier)
	})

	t.Run("Should refuse to escalate past complex", func(t *testing.T) {
		result := controller.HandleToolEscalation(ctx, notFound, TierComplex)
		assert.False(t, result.ShouldEscalate)
		assert.Equal(t, TierComplex, result.NextTier)
		assert.Contains(t, result.Reason, "maximum tier")
	})

	t.Run("Should not escalate for unrelated failures", func(t *testing.T) {
		result := controller.HandleToolEscalation(ctx, errors.New("connection refused"), TierSimple)
		assert.False(t, result.ShouldEscalate)
		assert.Equal(t, TierSimple, result.NextTier)
	})

	t.Run("Should terminate after at most two escalations from the bottom", func(t *testing.T) {
		tier := TierSimple
		steps := 0
		for {
			result := controller.HandleToolEscalation(ctx, notFound, tier)
			if !result.ShouldEscalate {
				break
			}
			tier = result.NextTier
			steps++
		}
		assert.Equal(t, 2, steps)
		assert.Equal(t, TierComplex, tier)
	})
}
