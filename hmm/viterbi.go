package hmm

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DeadEndError reports a decode that reached a position where no state had
// an outgoing transition, leaving the rest of the sentence unreachable.
type DeadEndError struct {
	Position int
	Token    string
}

func (e *DeadEndError) Error() string {
	return fmt.Sprintf("viterbi dead end at position %d (token %q): no reachable next states", e.Position, e.Token)
}

// Decode runs the Viterbi dynamic program over one tokenized sentence and
// returns the maximum-probability tag path, one tag per token. Tokens are
// lower-cased before lookup. A word never observed with a candidate tag
// scores the unseen penalty instead of failing, so arbitrary input
// vocabulary is accepted.
func (m Model) Decode(tokens []string) ([]string, error) {
	return m.DecodeWithOptions(tokens, m.options)
}

// DecodeWithOptions is Decode with per-call options, for callers that
// adjust the penalty at runtime.
func (m Model) DecodeWithOptions(tokens []string, opts DecodeOptions) ([]string, error) {
	result := make([]string, len(tokens))
	if len(tokens) == 0 {
		return result, nil
	}

	scores := map[string]float64{StartMarker: 0}
	back := make([]map[string]string, len(tokens))

	for i, token := range tokens {
		word := strings.ToLower(token)
		back[i] = make(map[string]string)
		next := make(map[string]float64)

		for _, cur := range sortedStates(scores) {
			curScore := scores[cur]
			for _, nextTag := range m.successors[cur] {
				emission, seen := m.emissions.Lookup(nextTag, word)
				if !seen {
					emission = opts.UnseenPenalty
				}
				candidate := curScore + m.transitions[cur][nextTag] + emission
				// strict improvement only: among equal scores the first
				// state in enumeration order keeps the slot
				if best, ok := next[nextTag]; !ok || candidate > best {
					next[nextTag] = candidate
					back[i][nextTag] = cur
				}
			}
		}

		if len(next) == 0 {
			return nil, &DeadEndError{Position: i, Token: token}
		}
		scores = next
	}

	best := math.Inf(-1)
	var tag string
	for _, state := range sortedStates(scores) {
		if score := scores[state]; score > best {
			best = score
			tag = state
		}
	}

	for i := len(tokens) - 1; i >= 0; i-- {
		result[i] = tag
		tag = back[i][tag]
	}
	return result, nil
}

func sortedStates(scores map[string]float64) []string {
	states := make([]string, 0, len(scores))
	for state := range scores {
		states = append(states, state)
	}
	sort.Strings(states)
	return states
}

// NewTagger wraps a model into the closure form the pipeline stages use.
// opts is consulted per call and may be nil to use the model defaults.
func NewTagger(model Model, opts func() DecodeOptions) func(tokens []string) ([]string, error) {
	if opts == nil {
		opts = model.Options
	}
	return func(tokens []string) ([]string, error) {
		return model.DecodeWithOptions(tokens, opts())
	}
}
