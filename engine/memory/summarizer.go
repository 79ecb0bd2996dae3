package memory

import (
	"fmt"
	"strings"

	"github.com/dealdesk/dealdesk/engine/llm"
)

// snippetMaxLen bounds how much of each dropped message the summary quotes.
const snippetMaxLen = 120

// summarizeDropped builds a single system message standing in for messages
// removed by truncation. Rule-based and deterministic: no model call, so
// summarization can never fail or block a turn. The summary quotes a short
// snippet of each dropped message in original order.
func summarizeDropped(dropped []llm.Message) llm.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Summary of %d earlier messages:", len(dropped))
	for _, msg := range dropped {
		b.WriteString("\n- [")
		b.WriteString(string(msg.Role))
		b.WriteString("] ")
		b.WriteString(snippet(msg.Content))
	}
	return llm.Message{
		Role:    llm.MessageRoleSystem,
		Content: b.String(),
	}
}

func snippet(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	if len(content) <= snippetMaxLen {
		return content
	}
	cut := content[:snippetMaxLen]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
