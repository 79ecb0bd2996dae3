package llm

import (
	"fmt"
	"os"

	"github.com/dealdesk/dealdesk/engine/core"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// TierConfig declares the curated medium-tier tool subset. The simple and
// complex tiers need no declaration: one is empty, the other is the catalog.
type TierConfig struct {
	// MediumTools lists the tool names exposed at the medium tier.
	MediumTools []string `yaml:"medium_tools" json:"medium_tools" validate:"required,min=1,dive,required"`
}

// Validate validates the tier configuration shape. Name existence against the
// catalog is checked by NewTierSelector, not here.
func (c *TierConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return core.NewError(err, ErrCodeTierConfig, nil)
	}
	return nil
}

// LoadTierConfig reads and validates a tier configuration from a YAML file.
func LoadTierConfig(path string) (*TierConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewError(fmt.Errorf("failed to read tier config: %w", err), ErrCodeTierConfig, map[string]any{
			"path": path,
		})
	}
	return ParseTierConfig(data)
}

// ParseTierConfig decodes and validates tier configuration YAML.
func ParseTierConfig(data []byte) (*TierConfig, error) {
	var cfg TierConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, core.NewError(fmt.Errorf("failed to decode tier config: %w", err), ErrCodeTierConfig, nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
