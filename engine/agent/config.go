// Package agent runs complete conversation turns: it binds stored history,
// resolves the tool tier for the classified intent, invokes the model through
// the adapter contract, and retries tool-not-found failures at a wider tier.
package agent

import (
	"github.com/go-playground/validator/v10"

	"github.com/dealdesk/dealdesk/engine/core"
	"github.com/dealdesk/dealdesk/engine/llm"
)

// Config holds orchestrator settings.
type Config struct {
	// SystemPrompt is prepended to every model invocation.
	SystemPrompt string
	// MaxEscalations bounds tier-widening retries per turn. Two steps reach
	// the terminal tier from the bottom, so values above 2 buy nothing.
	MaxEscalations int `validate:"gte=0,lte=2"`
}

// DefaultConfig returns the default orchestrator configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxEscalations: 2,
	}
}

// Option configures the orchestrator.
type Option func(*Config)

// WithSystemPrompt sets the system prompt sent on every invocation.
func WithSystemPrompt(prompt string) Option {
	return func(c *Config) {
		c.SystemPrompt = prompt
	}
}

// WithMaxEscalations bounds tier-widening retries per turn.
func WithMaxEscalations(n int) Option {
	return func(c *Config) {
		c.MaxEscalations = n
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return core.NewError(err, llm.ErrCodeInvalidConfig, nil)
	}
	return nil
}
