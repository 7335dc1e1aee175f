package hmm

const (
	// StartMarker is the pseudo tag/token prepended to every training line
	// and standing in for sentence-initial context. It never appears in
	// decoder output.
	StartMarker = "#"

	// TerminalTag closes every training sentence. No outgoing transition is
	// modeled from it because a sentence boundary always follows.
	TerminalTag = "."
)

// TrainEmissions builds the tag -> word log-probability table from two
// positionally aligned sequences, both carrying the start marker at
// sentence boundaries. The marker has no lexical realization and is
// stripped after counting.
func TrainEmissions(words, tags []string) ProbTable {
	table := make(ProbTable)
	for i, tag := range tags {
		table.bump(tag, words[i])
	}
	delete(table, StartMarker)
	table.normalize()
	return table
}

// TrainTransitions builds the tag -> next-tag log-probability table from
// the tag sequence alone, sentence boundaries already embedded as start
// markers.
func TrainTransitions(tags []string) ProbTable {
	table := make(ProbTable)
	for i := 0; i+1 < len(tags); i++ {
		table.bump(tags[i], tags[i+1])
	}
	delete(table, TerminalTag)
	table.normalize()
	return table
}
