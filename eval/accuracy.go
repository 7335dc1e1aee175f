package eval

import "fmt"

// Accuracy returns the fraction of positions where predicted and gold
// agree. Start markers are expected to be stripped by the caller. A length
// mismatch is reported as an error rather than left undefined.
func Accuracy(predicted, gold []string) (float64, error) {
	if len(predicted) != len(gold) {
		return 0, fmt.Errorf("sequence lengths differ: %d predicted vs %d gold", len(predicted), len(gold))
	}
	if len(gold) == 0 {
		return 0, fmt.Errorf("nothing to score: both sequences are empty")
	}
	correct := 0
	for i, tag := range gold {
		if predicted[i] == tag {
			correct++
		}
	}
	return float64(correct) / float64(len(gold)), nil
}
