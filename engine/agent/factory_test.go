package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdesk/dealdesk/engine/llm"
	"github.com/dealdesk/dealdesk/pkg/config"
)

func TestNewFromConfig(t *testing.T) {
	ctx := context.Background()
	catalog, err := llm.NewCatalog([]llm.Tool{
		{Name: "document_search"},
		{Name: "financial_lookup"},
	})
	require.NoError(t, err)

	t.Run("Should assemble a working orchestrator from defaults", func(t *testing.T) {
		client := &scriptedClient{}
		o, cleanup, err := NewFromConfig(ctx, nil, catalog, client)
		require.NoError(t, err)
		t.Cleanup(func() { _ = cleanup() })
		result, err := o.RunTurn(ctx, testRecords(), llm.IntentClassification{})
		require.NoError(t, err)
		assert.Equal(t, llm.TierComplex, result.Tier)
		assert.Len(t, client.requests[0].Tools, 2)
	})

	t.Run("Should apply context and agent settings from config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Context.MaxMessages = 1
		cfg.Agent.SystemPrompt = "You are a diligence analyst."
		cfg.Tools.MediumTools = []string{"document_search"}
		client := &scriptedClient{}
		o, cleanup, err := NewFromConfig(ctx, cfg, catalog, client)
		require.NoError(t, err)
		t.Cleanup(func() { _ = cleanup() })

		records := append(testRecords(), testRecords()...)
		result, err := o.RunTurn(ctx, records, llm.IntentClassification{})
		require.NoError(t, err)
		assert.True(t, result.Context.WasTruncated)
		assert.Len(t, result.Context.Messages, 2)
		assert.Equal(t, "You are a diligence analyst.", client.requests[0].SystemPrompt)
	})

	t.Run("Should fail when the curated subset names unknown tools", func(t *testing.T) {
		cfg := config.Default()
		cfg.Tools.MediumTools = []string{"spreadsheet_eval"}
		_, _, err := NewFromConfig(ctx, cfg, catalog, &scriptedClient{})
		require.Error(t, err)
	})
}
