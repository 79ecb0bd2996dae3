package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/dealdesk/dealdesk/engine/core"
)

// Tool is an opaque named capability from the externally-owned catalog. The
// orchestration layer never creates or mutates tools, only selects subsets.
type Tool struct {
	Name        string
	Description string
	Invoke      func(ctx context.Context, input string) (string, error)
}

// Catalog is the complete, externally-owned tool set. Lookup is by
// canonicalized name; iteration preserves registration order so that
// "complex" selections are identical in length and order to the source.
type Catalog struct {
	tools []Tool
	index map[string]int
}

// NewCatalog builds a catalog from the full tool list. Duplicate names (after
// canonicalization) are rejected rather than silently shadowed.
func NewCatalog(tools []Tool) (*Catalog, error) {
	c := &Catalog{
		tools: make([]Tool, 0, len(tools)),
		index: make(map[string]int, len(tools)),
	}
	for _, t := range tools {
		canonical := canonicalToolName(t.Name)
		if canonical == "" {
			return nil, core.NewError(fmt.Errorf("tool name cannot be empty"), ErrCodeCatalogInvalid, nil)
		}
		if _, exists := c.index[canonical]; exists {
			return nil, core.NewError(fmt.Errorf("duplicate tool name %q", t.Name), ErrCodeCatalogInvalid, map[string]any{
				"tool": t.Name,
			})
		}
		c.index[canonical] = len(c.tools)
		c.tools = append(c.tools, t)
	}
	return c, nil
}

// Find returns the tool registered under the given name.
func (c *Catalog) Find(name string) (Tool, bool) {
	i, ok := c.index[canonicalToolName(name)]
	if !ok {
		return Tool{}, false
	}
	return c.tools[i], true
}

// Has reports whether a tool is registered under the given name.
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[canonicalToolName(name)]
	return ok
}

// All returns the full tool list in registration order. The slice is a copy;
// callers cannot mutate the catalog through it.
func (c *Catalog) All() []Tool {
	out := make([]Tool, len(c.tools))
	copy(out, c.tools)
	return out
}

// Len returns the number of registered tools.
func (c *Catalog) Len() int {
	return len(c.tools)
}

// canonicalToolName normalizes tool names to prevent case/spacing conflicts.
func canonicalToolName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
