package hmm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	trainWords = []string{"#", "the", "dog", "barks", ".", "#", "the", "cat", "runs", "."}
	trainTags  = []string{"#", "DET", "NOUN", "VERB", ".", "#", "DET", "NOUN", "VERB", "."}
)

func TestTrainEmissions(t *testing.T) {
	table := TrainEmissions(trainWords, trainTags)

	_, hasMarker := table[StartMarker]
	assert.False(t, hasMarker, "start marker must not survive as an emitting tag")

	logp, ok := table.Lookup("DET", "the")
	require.True(t, ok)
	assert.InDelta(t, 0.0, logp, 1e-9, `"the" is the only word observed with DET`)

	logp, ok = table.Lookup("NOUN", "dog")
	require.True(t, ok)
	assert.InDelta(t, math.Log(0.5), logp, 1e-9)

	logp, ok = table.Lookup("NOUN", "cat")
	require.True(t, ok)
	assert.InDelta(t, math.Log(0.5), logp, 1e-9)

	_, ok = table.Lookup("NOUN", "barks")
	assert.False(t, ok, "unobserved pair must stay absent, not zero")

	assertRowsSumToOne(t, table)
}

func TestTrainTransitions(t *testing.T) {
	table := TrainTransitions(trainTags)

	_, hasTerminal := table[TerminalTag]
	assert.False(t, hasTerminal, "terminal tag must not appear as a transition source")

	logp, ok := table.Lookup(StartMarker, "DET")
	require.True(t, ok)
	assert.InDelta(t, 0.0, logp, 1e-9, "start marker always precedes DET in this corpus")

	logp, ok = table.Lookup("VERB", TerminalTag)
	require.True(t, ok)
	assert.InDelta(t, 0.0, logp, 1e-9)

	_, ok = table.Lookup("NOUN", "DET")
	assert.False(t, ok)

	assertRowsSumToOne(t, table)
}

func assertRowsSumToOne(t *testing.T, table ProbTable) {
	t.Helper()
	for outer, row := range table {
		var sum float64
		for _, logp := range row {
			sum += math.Exp(logp)
		}
		assert.InDelta(t, 1.0, sum, 1e-6, "row %q must be a normalized distribution", outer)
	}
}

func TestNewModelRejectsMisalignedSequences(t *testing.T) {
	_, err := NewModel([]string{"#", "dog"}, []string{"#"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "misaligned")
}

func TestNewModelOptions(t *testing.T) {
	model, err := NewModel(trainWords, trainTags)
	require.NoError(t, err)
	assert.Equal(t, DefaultUnseenPenalty, model.Options().UnseenPenalty)

	model, err = NewModel(trainWords, trainTags, WithUnseenPenalty(-15))
	require.NoError(t, err)
	assert.Equal(t, -15.0, model.Options().UnseenPenalty)
}
