package hmm

import "math"

// ProbTable is a two-level sparse lookup from an outer key to inner keys
// with log-probability values. Emissions are keyed tag -> word, transitions
// are keyed tag -> next tag.
type ProbTable map[string]map[string]float64

func (t ProbTable) bump(outer, inner string) {
	row, ok := t[outer]
	if !ok {
		row = make(map[string]float64)
		t[outer] = row
	}
	row[inner]++
}

// Lookup returns the stored log probability for a pair and whether the pair
// was observed during training. An absent pair is not an error, it is the
// signal for the unseen-word fallback.
func (t ProbTable) Lookup(outer, inner string) (float64, bool) {
	row, ok := t[outer]
	if !ok {
		return 0, false
	}
	v, ok := row[inner]
	return v, ok
}

// normalize turns raw frequencies into log probabilities, row by row.
func (t ProbTable) normalize() {
	for _, row := range t {
		var total float64
		for _, freq := range row {
			total += freq
		}
		for inner, freq := range row {
			row[inner] = math.Log(freq / total)
		}
	}
}
