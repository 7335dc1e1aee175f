package pipeline

import (
	"corvustext.com/tagger/types"
	"strings"
)

// NewLineSplitter turns a request into a stream of sentences, one per line,
// numbered so downstream fan-out stages can restore the original order.
func NewLineSplitter() func(request Request) <-chan types.Sentence {
	return func(request Request) <-chan types.Sentence {
		out := make(chan types.Sentence)
		go func() {
			defer close(out)
			for i, line := range strings.Split(request.Text, "\n") {
				out <- types.Sentence{Index: i, Text: line}
			}
		}()
		return out
	}
}
