package hmm

import (
	"fmt"
	"sort"
)

// DefaultUnseenPenalty is the log-probability surrogate scored when a
// (tag, word) emission was never observed during training.
const DefaultUnseenPenalty = -30.0

// DecodeOptions carries the per-call knobs of the decoder.
type DecodeOptions struct {
	UnseenPenalty float64 `json:"unseen_penalty"`
}

// Model is the immutable pair of emission and transition tables produced by
// training. It is built once per corpus and safe to share read-only across
// any number of concurrent Decode calls.
type Model struct {
	emissions   ProbTable
	transitions ProbTable
	// sorted next tags per source tag, fixing the enumeration order of the
	// decoder so tie-breaking is deterministic
	successors map[string][]string
	options    DecodeOptions
}

type Option func(*Model)

func WithUnseenPenalty(penalty float64) Option {
	return func(m *Model) {
		m.options.UnseenPenalty = penalty
	}
}

// NewModel trains a model from positionally aligned word and tag sequences.
// Misaligned sequences are rejected here rather than producing a silently
// corrupt model.
func NewModel(words, tags []string, opts ...Option) (Model, error) {
	if len(words) != len(tags) {
		return Model{}, fmt.Errorf("misaligned training sequences: %d words vs %d tags", len(words), len(tags))
	}
	m := Model{
		emissions:   TrainEmissions(words, tags),
		transitions: TrainTransitions(tags),
		options:     DecodeOptions{UnseenPenalty: DefaultUnseenPenalty},
	}
	m.successors = make(map[string][]string, len(m.transitions))
	for cur, row := range m.transitions {
		next := make([]string, 0, len(row))
		for tag := range row {
			next = append(next, tag)
		}
		sort.Strings(next)
		m.successors[cur] = next
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m, nil
}

// Options returns the decode defaults the model was built with.
func (m Model) Options() DecodeOptions {
	return m.options
}
