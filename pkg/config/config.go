// Package config loads application-level configuration for the conversation
// orchestration service. Values are plain data: this package knows nothing
// about the engine packages that consume them.
package config

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// LogConfig controls the process logger.
type LogConfig struct {
	Level string `yaml:"level" json:"level" validate:"omitempty,oneof=debug info warn error"`
	JSON  bool   `yaml:"json"  json:"json"`
}

// ContextConfig bounds conversation history sent to the model.
type ContextConfig struct {
	MaxMessages         int  `yaml:"max_messages"         json:"max_messages"         validate:"gt=0"`
	MaxTokens           int  `yaml:"max_tokens"           json:"max_tokens"           validate:"gt=0"`
	EnableSummarization bool `yaml:"enable_summarization" json:"enable_summarization"`
}

// ToolsConfig controls token accounting and the curated medium-tier subset.
type ToolsConfig struct {
	// Encoding names the tokenizer encoding used for budget accounting.
	Encoding string `yaml:"encoding" json:"encoding"`
	// MediumTools lists the tool names exposed at the medium tier.
	MediumTools []string `yaml:"medium_tools" json:"medium_tools"`
}

// AgentConfig controls the turn orchestrator.
type AgentConfig struct {
	SystemPrompt   string `yaml:"system_prompt"   json:"system_prompt"`
	MaxEscalations int    `yaml:"max_escalations" json:"max_escalations" validate:"gte=0,lte=2"`
}

// Config is the full application configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"     json:"log"`
	Context ContextConfig `yaml:"context" json:"context"`
	Tools   ToolsConfig   `yaml:"tools"   json:"tools"`
	Agent   AgentConfig   `yaml:"agent"   json:"agent"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Context: ContextConfig{
			MaxMessages: 10,
			MaxTokens:   8000,
		},
		Tools: ToolsConfig{
			Encoding: "cl100k_base",
		},
		Agent: AgentConfig{
			MaxEscalations: 2,
		},
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load reads, merges over defaults, and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration. Fields absent from the input keep their
// default values.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := mergo.Merge(&cfg, *Default()); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
