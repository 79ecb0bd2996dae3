package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdesk/dealdesk/engine/core"
)

func newTestSelector(t *testing.T) *TierSelector {
	t.Helper()
	catalog, err := NewCatalog(testTools())
	require.NoError(t, err)
	selector, err := NewTierSelector(catalog, []string{"document_search", "financial_lookup"})
	require.NoError(t, err)
	return selector
}

func TestNewTierSelector(t *testing.T) {
	t.Run("Should fail when a curated name is absent from the catalog", func(t *testing.T) {
		catalog, err := NewCatalog(testTools())
		require.NoError(t, err)
		_, err = NewTierSelector(catalog, []string{"document_search", "spreadsheet_eval"})
		require.Error(t, err)
		assert.Equal(t, ErrCodeTierConfig, core.CodeOf(err))
		assert.Contains(t, err.Error(), "spreadsheet_eval")
	})

	t.Run("Should fail on a nil catalog", func(t *testing.T) {
		_, err := NewTierSelector(nil, nil)
		require.Error(t, err)
	})
}

func TestTierSelector_ToolsForComplexity(t *testing.T) {
	ctx := context.Background()
	selector := newTestSelector(t)

	t.Run("Should return an empty set for simple", func(t *testing.T) {
		tools := selector.ToolsForComplexity(ctx, TierSimple)
		assert.NotNil(t, tools)
		assert.Empty(t, tools)
	})

	t.Run("Should return the curated subset for medium", func(t *testing.T) {
		tools := selector.ToolsForComplexity(ctx, TierMedium)
		require.Len(t, tools, 2)
		assert.Equal(t, "document_search", tools[0].Name)
		assert.Equal(t, "financial_lookup", tools[1].Name)
	})

	t.Run("Should return the full catalog in order for complex", func(t *testing.T) {
		tools := selector.ToolsForComplexity(ctx, TierComplex)
		require.Len(t, tools, 4)
		for i, want := range testTools() {
			assert.Equal(t, want.Name, tools[i].Name)
		}
	})

	t.Run("Should keep count and materialized length consistent for every tier", func(t *testing.T) {
		for _, tier := range []Tier{TierSimple, TierMedium, TierComplex} {
			assert.Equal(t,
				selector.ToolCountForComplexity(tier),
				len(selector.ToolsForComplexity(ctx, tier)),
				"tier %s", tier,
			)
		}
	})

	t.Run("Should be deterministic across repeated calls", func(t *testing.T) {
		first := selector.ToolsForComplexity(ctx, TierMedium)
		for i := 0; i < 3; i++ {
			again := selector.ToolsForComplexity(ctx, TierMedium)
			require.Len(t, again, len(first))
			for i := range first {
				assert.Equal(t, first[i].Name, again[i].Name)
			}
		}
	})
}

func TestTierSelector_ToolsForIntent(t *testing.T) {
	ctx := context.Background()
	selector := newTestSelector(t)

	t.Run("Should use the classified complexity when present", func(t *testing.T) {
		tier := TierSimple
		tools := selector.ToolsForIntent(ctx, IntentClassification{
			Intent:     "greeting",
			Complexity: &tier,
			Confidence: 0.98,
		})
		assert.Empty(t, tools)
	})

	t.Run("Should default to the full catalog when complexity is missing", func(t *testing.T) {
		tools := selector.ToolsForIntent(ctx, IntentClassification{Intent: "analysis"})
		assert.Len(t, tools, selector.ToolCountForComplexity(TierComplex))
	})

	t.Run("Should default to the full catalog for an invalid complexity", func(t *testing.T) {
		tier := Tier("extreme")
		tools := selector.ToolsForIntent(ctx, IntentClassification{Complexity: &tier})
		assert.Len(t, tools, 4)
	})

	t.Run("Should ignore confidence entirely", func(t *testing.T) {
		tier := TierMedium
		low := selector.ToolsForIntent(ctx, IntentClassification{Complexity: &tier, Confidence: 0.01})
		high := selector.ToolsForIntent(ctx, IntentClassification{Complexity: &tier, Confidence: 0.99})
		assert.Equal(t, len(low), len(high))
	})
}
