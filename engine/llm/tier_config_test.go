package llm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdesk/dealdesk/engine/core"
)

func TestParseTierConfig(t *testing.T) {
	t.Run("Should decode a valid config", func(t *testing.T) {
		cfg, err := ParseTierConfig([]byte("medium_tools:\n  - document_search\n  - financial_lookup\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"document_search", "financial_lookup"}, cfg.MediumTools)
	})

	t.Run("Should reject an empty tool list", func(t *testing.T) {
		_, err := ParseTierConfig([]byte("medium_tools: []\n"))
		require.Error(t, err)
		assert.Equal(t, ErrCodeTierConfig, core.CodeOf(err))
	})

	t.Run("Should reject malformed YAML", func(t *testing.T) {
		_, err := ParseTierConfig([]byte("medium_tools: [unclosed"))
		require.Error(t, err)
		assert.Equal(t, ErrCodeTierConfig, core.CodeOf(err))
	})

	t.Run("Should reject a blank entry", func(t *testing.T) {
		_, err := ParseTierConfig([]byte("medium_tools:\n  - document_search\n  - \"\"\n"))
		require.Error(t, err)
	})
}

func TestLoadTierConfig(t *testing.T) {
	t.Run("Should load a config file from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tiers.yaml")
		require.NoError(t, os.WriteFile(path, []byte("medium_tools:\n  - document_search\n"), 0o644))
		cfg, err := LoadTierConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"document_search"}, cfg.MediumTools)
	})

	t.Run("Should fail with the config error code for a missing file", func(t *testing.T) {
		_, err := LoadTierConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Equal(t, ErrCodeTierConfig, core.CodeOf(err))
	})
}
