// Package tokens implements token accounting for conversation context
// budgeting. Counts are approximate and monotonic with input length; they are
// used for relative budget comparisons only, never for exact compatibility
// with a provider tokenizer.
package tokens

import (
	"fmt"
	"sync"

	memcore "github.com/dealdesk/dealdesk/engine/memory/core"
	"github.com/dealdesk/dealdesk/engine/llm"
	"github.com/pkoukk/tiktoken-go"
)

const (
	// DefaultEncoding is the encoding used when none is specified.
	DefaultEncoding = "cl100k_base"

	// MessageOverheadTokens is the fixed cost of encoding a message's role
	// marker and framing, charged on top of its content tokens.
	MessageOverheadTokens = 4
)

// Counter converts text and messages into approximate token counts. It owns
// a lazily-built tiktoken encoding table that must be released with Close
// when the counter is no longer needed. After Close, or when the encoder is
// unavailable, counting degrades to a length-based heuristic instead of
// failing the caller.
type Counter struct {
	encodingName string
	estimator    memcore.TokenEstimator

	mu  sync.RWMutex
	tke *tiktoken.Tiktoken
}

// NewCounter creates a counter for the given encoding name. An unknown
// encoding falls back to DefaultEncoding; a counter is returned even when no
// encoding can be loaded at all, in which case every count uses the
// heuristic estimator.
func NewCounter(encoding string) (*Counter, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	c := &Counter{
		encodingName: encoding,
		estimator:    memcore.NewTokenEstimator(memcore.EnglishEstimation),
	}
	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		tke, err = tiktoken.GetEncoding(DefaultEncoding)
		if err != nil {
			// Corrupt or missing encoding resource: stay on the heuristic.
			return c, nil
		}
		c.encodingName = DefaultEncoding
	}
	c.tke = tke
	return c, nil
}

// DefaultCounter creates a counter on the default encoding.
func DefaultCounter() (*Counter, error) {
	return NewCounter(DefaultEncoding)
}

// Encoding returns the name of the encoding in use, or a heuristic marker
// when the encoder is unavailable.
func (c *Counter) Encoding() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tke == nil {
		return fmt.Sprintf("%s-estimation", memcore.EnglishEstimation)
	}
	return c.encodingName
}

// CountText returns the approximate token count of text: zero for empty
// input, otherwise a positive integer that grows with length and is stable
// across repeated calls. Never fails for well-formed string input, including
// multi-byte content.
func (c *Counter) CountText(text string) int {
	if text == "" {
		return 0
	}
	c.mu.RLock()
	tke := c.tke
	c.mu.RUnlock()
	if tke == nil {
		return c.estimator.EstimateTokens(text)
	}
	return len(tke.Encode(text, nil, nil))
}

// CountMessage returns the token cost of a message: its content tokens plus
// the fixed role-marker overhead. Always strictly greater than the content
// tokens alone.
func (c *Counter) CountMessage(msg llm.Message) int {
	return c.CountText(msg.Content) + MessageOverheadTokens
}

// CountMessages returns the exact sum of CountMessage over the sequence.
func (c *Counter) CountMessages(msgs []llm.Message) int {
	total := 0
	for _, msg := range msgs {
		total += c.CountMessage(msg)
	}
	return total
}

// Close releases the encoding table. Further counts fall back to the
// heuristic estimator. Close is idempotent.
func (c *Counter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tke = nil
	return nil
}
