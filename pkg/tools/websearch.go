package tools

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Filichkin/web-search-agent/pkg/mediator"
)

const (
	WebSearchName        = "web_search"
	WebSearchDescription = "Search the web for information. Returns a summary of enriched search results to ground the answer in."

	GroupWeb = "group:web"
)

// WebSearchSchema returns the JSON schema for the web search tool. The
// raw_input field carries the verbatim user message; the mediator overrides
// the query with it when present.
func WebSearchSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query",
			},
			"raw_input": map[string]any{
				"type":        "string",
				"description": "The user's verbatim message that triggered this search",
			},
		},
		"required": []string{"query"},
	}
}

// NewWebSearchTool exposes the mediated search pipeline as the web_search
// builtin. sessionID scopes the per-turn guard state; each conversation gets
// its own tool instance (or its own session ID).
func NewWebSearchTool(med *mediator.Mediator, sessionID string) *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        WebSearchName,
			Description: WebSearchDescription,
			Annotations: &mcp.ToolAnnotations{Title: "Web Search"},
			InputSchema: WebSearchSchema(),
		},
		Group: GroupWeb,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			callID := uuid.NewString()

			rawInput, _ := input["raw_input"].(string)
			if strings.TrimSpace(rawInput) == "" {
				// No surrounding orchestration supplied the utterance;
				// the proposed query is the best identity we have.
				rawInput, _ = input["query"].(string)
			}
			args := make(map[string]any, len(input))
			for key, value := range input {
				if key == "raw_input" {
					continue
				}
				args[key] = value
			}

			summary, err := med.Invoke(ctx, sessionID, args, rawInput)
			if err != nil {
				// Transport failure of the search capability: surface it as a
				// structured error so the agent loop's retry policy can act.
				return ErrorResultf(WebSearchName, "web search failed: %v", err), nil
			}

			result := TextResult(summary)
			result.Details = map[string]any{
				"call_id":    callID,
				"session_id": sessionID,
			}
			return result, nil
		},
	}
}
