package mediator

import (
	"strings"
	"sync"
)

// Decision is the outcome of asking the turn guard to admit a search call.
type Decision int

const (
	// DecisionProceed admits the call and charges it against the turn budget.
	DecisionProceed Decision = iota
	// DecisionAlreadySearched rejects a repeat of an already-searched query.
	DecisionAlreadySearched
	// DecisionLimitReached rejects a call past the per-turn budget.
	DecisionLimitReached
)

func (d Decision) String() string {
	switch d {
	case DecisionProceed:
		return "proceed"
	case DecisionAlreadySearched:
		return "already_searched"
	case DecisionLimitReached:
		return "limit_reached"
	default:
		return "unknown"
	}
}

// NormalizeQuery produces the admission/dedup key for a query: trimmed and
// lower-cased, so case and whitespace variants count as the same search.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// turnState tracks one session's current turn. A turn spans all search calls
// issued for a single raw user utterance.
type turnState struct {
	rawInput    string
	seenQueries map[string]bool
	callCount   int
}

// TurnGuard rate-limits and deduplicates search calls per conversation turn.
// State is keyed by session ID so concurrent conversations cannot corrupt
// each other's budgets. An LLM agent may retry or rephrase a search call;
// without this guard a single turn can loop indefinitely or burn external
// API quota.
type TurnGuard struct {
	mu       sync.Mutex
	maxCalls int
	sessions map[string]*turnState
}

// NewTurnGuard creates a guard allowing maxCallsPerTurn admitted searches per
// turn. Values below 1 fall back to 1.
func NewTurnGuard(maxCallsPerTurn int) *TurnGuard {
	if maxCallsPerTurn < 1 {
		maxCallsPerTurn = 1
	}
	return &TurnGuard{
		maxCalls: maxCallsPerTurn,
		sessions: make(map[string]*turnState),
	}
}

// Admit decides whether a search for query may proceed in the session's
// current turn. Seeing a rawInput that differs from the session's last one
// starts a new turn, resetting the seen-query set and call budget. The
// already-searched check runs before the budget check, so a repeated query
// reports DecisionAlreadySearched even when the budget is exhausted.
func (g *TurnGuard) Admit(sessionID, rawInput, query string) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	state, ok := g.sessions[sessionID]
	if !ok {
		state = &turnState{seenQueries: make(map[string]bool)}
		g.sessions[sessionID] = state
	}
	if rawInput != state.rawInput {
		state.rawInput = rawInput
		state.seenQueries = make(map[string]bool)
		state.callCount = 0
	}

	normalized := NormalizeQuery(query)
	if state.seenQueries[normalized] {
		return DecisionAlreadySearched
	}
	if state.callCount >= g.maxCalls {
		return DecisionLimitReached
	}
	state.seenQueries[normalized] = true
	state.callCount++
	return DecisionProceed
}

// Forget drops all turn state for a session.
func (g *TurnGuard) Forget(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessions, sessionID)
}

// CallCount reports how many searches the session's current turn has issued.
func (g *TurnGuard) CallCount(sessionID string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if state, ok := g.sessions[sessionID]; ok {
		return state.callCount
	}
	return 0
}
