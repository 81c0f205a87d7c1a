// Package tokens provides cached tiktoken encoders for budgeting the text
// returned to the model.
package tokens

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding covers the GPT-4 family and is the fallback for unknown models.
const DefaultEncoding = "cl100k_base"

var (
	tokenizerCache   = make(map[string]*tiktoken.Tiktoken)
	tokenizerCacheMu sync.RWMutex
)

// GetTokenizer returns a cached tiktoken encoder for the given model.
func GetTokenizer(model string) (*tiktoken.Tiktoken, error) {
	tokenizerCacheMu.RLock()
	if tkm, ok := tokenizerCache[model]; ok {
		tokenizerCacheMu.RUnlock()
		return tkm, nil
	}
	tokenizerCacheMu.RUnlock()

	tokenizerCacheMu.Lock()
	defer tokenizerCacheMu.Unlock()

	// Double-check after acquiring write lock
	if tkm, ok := tokenizerCache[model]; ok {
		return tkm, nil
	}

	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		tkm, err = tiktoken.GetEncoding(DefaultEncoding)
		if err != nil {
			return nil, err
		}
	}

	tokenizerCache[model] = tkm
	return tkm, nil
}

// Count returns the token count of text for the given model. A tokenizer
// failure yields 0; callers treat that as "no budget information".
func Count(text, model string) int {
	tkm, err := GetTokenizer(model)
	if err != nil {
		return 0
	}
	return len(tkm.Encode(text, nil, nil))
}

// Truncate cuts text to at most maxTokens tokens for the given model.
// If the tokenizer cannot be loaded the text is returned unchanged.
func Truncate(text, model string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	tkm, err := GetTokenizer(model)
	if err != nil {
		return text
	}
	encoded := tkm.Encode(text, nil, nil)
	if len(encoded) <= maxTokens {
		return text
	}
	return tkm.Decode(encoded[:maxTokens])
}
