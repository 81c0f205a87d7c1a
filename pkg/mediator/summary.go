package mediator

import (
	"strings"

	"github.com/Filichkin/web-search-agent/pkg/tokens"
)

const summaryHeader = "### Sources (full-text enriched; use these when answering):"

// buildSummary assembles the markdown-style context block handed back to the
// agent: a header, then a link line and an indented snippet per source. When
// a token budget is configured the whole block is truncated to it, so the
// summary can never blow up the model context.
func (m *Mediator) buildSummary(enriched []EnrichedResult) string {
	var b strings.Builder
	b.WriteString(summaryHeader)
	b.WriteString("\n")
	for _, source := range enriched {
		b.WriteString("- [")
		b.WriteString(source.Title)
		b.WriteString("](")
		b.WriteString(source.URL)
		b.WriteString(")\n")
		if source.Snippet != "" {
			b.WriteString("  ")
			b.WriteString(source.Snippet)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	summary := strings.TrimRight(b.String(), "\n")

	if m.cfg.MaxSummaryTokens > 0 {
		summary = tokens.Truncate(summary, m.cfg.SummaryTokenModel, m.cfg.MaxSummaryTokens)
	}
	return summary
}
