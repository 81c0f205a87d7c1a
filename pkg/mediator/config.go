package mediator

// MaxResultsPerCall caps how many raw results one invocation enriches and
// persists.
const MaxResultsPerCall = 5

const (
	DefaultMaxCallsPerTurn   = 2
	DefaultSnippetMaxChars   = 300
	DefaultExtractMaxChars   = 1000
	DefaultMaxSummaryTokens  = 1200
	DefaultSummaryTokenModel = "gpt-4o-mini"
)

// Config holds the mediation knobs. The upstream deployments disagreed on
// the call budget (1 vs 2) and truncation lengths, so none of these are
// hard-coded behavior.
type Config struct {
	MaxCallsPerTurn   int    `yaml:"max_calls_per_turn"`
	SnippetMaxChars   int    `yaml:"snippet_max_chars"`
	ExtractMaxChars   int    `yaml:"extract_max_chars"`
	MaxSummaryTokens  int    `yaml:"max_summary_tokens"`
	SummaryTokenModel string `yaml:"summary_token_model"`
}

// DefaultConfig returns the default mediation knobs.
func DefaultConfig() Config {
	return Config{
		MaxCallsPerTurn:   DefaultMaxCallsPerTurn,
		SnippetMaxChars:   DefaultSnippetMaxChars,
		ExtractMaxChars:   DefaultExtractMaxChars,
		MaxSummaryTokens:  DefaultMaxSummaryTokens,
		SummaryTokenModel: DefaultSummaryTokenModel,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxCallsPerTurn <= 0 {
		c.MaxCallsPerTurn = DefaultMaxCallsPerTurn
	}
	if c.SnippetMaxChars <= 0 {
		c.SnippetMaxChars = DefaultSnippetMaxChars
	}
	if c.ExtractMaxChars <= 0 {
		c.ExtractMaxChars = DefaultExtractMaxChars
	}
	if c.SummaryTokenModel == "" {
		c.SummaryTokenModel = DefaultSummaryTokenModel
	}
	return c
}
