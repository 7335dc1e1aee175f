package pipeline

import (
	"corvustext.com/tagger/types"
	"strings"
	"sync"
)

type Tokenizer func(in <-chan types.Sentence) <-chan types.Sentence

// NewTokenizer lower-cases each sentence and splits it on whitespace, the
// same normalization the training corpus loader applies to word files.
func NewTokenizer() Tokenizer {
	return func(in <-chan types.Sentence) <-chan types.Sentence {
		out := make(chan types.Sentence)

		go func() {
			defer close(out)
			var wg sync.WaitGroup
			for sent := range in {
				wg.Add(1)
				go func(sent types.Sentence) {
					defer wg.Done()
					sent.Tokens = strings.Fields(strings.ToLower(sent.Text))
					out <- sent
				}(sent)
			}
			wg.Wait()
		}()

		return out
	}
}
