package mediator

import "strings"

// OverrideQuery returns a copy of args with the query field replaced by the
// verbatim raw user input. Models paraphrase or truncate queries, which
// degrades recall against the user's actual intent; forcing the literal
// utterance keeps search behavior deterministic. All other fields pass
// through untouched. An empty rawInput leaves the args unchanged.
func OverrideQuery(args map[string]any, rawInput string) map[string]any {
	out := make(map[string]any, len(args)+1)
	for key, value := range args {
		out[key] = value
	}
	if strings.TrimSpace(rawInput) != "" {
		out["query"] = rawInput
	}
	return out
}

// QueryArg extracts the query field from tool args.
func QueryArg(args map[string]any) string {
	if query, ok := args["query"].(string); ok {
		return query
	}
	return ""
}
