// Package tools provides the tool surface exposed to AI agents.
package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool wraps an MCP tool with execution logic and metadata.
type Tool struct {
	mcp.Tool          // Name, Description, InputSchema
	Group    string   // group:search, group:web, etc.
	Execute  func(ctx context.Context, input map[string]any) (*Result, error)
}

// Result standardizes tool output.
type Result struct {
	Status  ResultStatus   `json:"status"`
	Content []ContentBlock `json:"content,omitempty"`
	Details map[string]any `json:"details,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Text returns the text content from the result, or the error message if the
// status is error.
func (r *Result) Text() string {
	if r.Status == ResultError && r.Error != "" {
		return r.Error
	}
	for _, block := range r.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text
		}
	}
	return ""
}

// ContentBlock supports multi-modal results.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ResultStatus indicates the outcome of tool execution.
type ResultStatus string

const (
	ResultSuccess ResultStatus = "success"
	ResultError   ResultStatus = "error"
)

// ToMCPTool converts a Tool to its underlying mcp.Tool.
func (t *Tool) ToMCPTool() mcp.Tool {
	return t.Tool
}
