package core

import "unicode/utf8"

// TokenEstimationStrategy defines the strategy for estimating tokens when
// actual counting is unavailable
type TokenEstimationStrategy string

const (
	// EnglishEstimation uses the standard 1 token ≈ 4 characters for English text
	EnglishEstimation TokenEstimationStrategy = "english"
	// UnicodeEstimation uses rune-count based estimation for Unicode-heavy text
	UnicodeEstimation TokenEstimationStrategy = "unicode"
	// ConservativeEstimation assumes higher token density for safety
	ConservativeEstimation TokenEstimationStrategy = "conservative"
)

// TokenEstimator provides fallback token estimation when actual counting fails
type TokenEstimator interface {
	EstimateTokens(text string) int
}

// DefaultTokenEstimator implements TokenEstimator with configurable strategies
type DefaultTokenEstimator struct {
	strategy TokenEstimationStrategy
}

// NewTokenEstimator creates a new token estimator with the given strategy
func NewTokenEstimator(strategy TokenEstimationStrategy) *DefaultTokenEstimator {
	if strategy == "" {
		strategy = EnglishEstimation
	}
	return &DefaultTokenEstimator{strategy: strategy}
}

// EstimateTokens estimates token count based on the configured strategy.
// Empty input is zero; any non-empty input estimates to at least one token so
// the estimate stays monotonic with length.
func (e *DefaultTokenEstimator) EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	var estimate int
	switch e.strategy {
	case UnicodeEstimation:
		// Unicode characters often map 2:1 to tokens
		estimate = utf8.RuneCountInString(text) / 2
	case ConservativeEstimation:
		// 3:1 char-to-token ratio overestimates for safety in budget checks
		estimate = len(text) / 3
	default:
		// Standard English estimation: ~4 characters per token
		estimate = len(text) / 4
	}
	return max(1, estimate)
}
