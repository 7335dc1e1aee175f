package pipeline

import (
	"corvustext.com/tagger/hmm"
	"corvustext.com/tagger/logger"
	"corvustext.com/tagger/types"
	"sync"
)

type Tagger func(in <-chan types.Sentence) <-chan types.Sentence

// NewHMMTagger fans sentences out across goroutines and decodes each one
// against the shared model. The model is read-only after training, so no
// synchronization is needed between concurrent decodes. opts may be nil to
// use the model defaults.
func NewHMMTagger(model hmm.Model, opts func() hmm.DecodeOptions) Tagger {
	tagger := hmm.NewTagger(model, opts)
	tgrLogger := logger.NewLogger("HMM tagger")

	return func(in <-chan types.Sentence) <-chan types.Sentence {
		out := make(chan types.Sentence)
		go func() {
			defer close(out)
			var wg sync.WaitGroup
			for sent := range in {

				wg.Add(1)
				go func(sent types.Sentence) {
					defer wg.Done()
					tags, err := tagger(sent.Tokens)
					if err != nil {
						tgrLogger.Err(err).Int("line", sent.Index).Msg("Failed to decode sentence")
						sent.Err = err.Error()
					} else {
						sent.Tags = tags
					}
					out <- sent
				}(sent)

			}

			wg.Wait()

		}()
		return out
	}
}
