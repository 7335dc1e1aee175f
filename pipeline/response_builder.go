package pipeline

import (
	"corvustext.com/tagger/logger"
	"corvustext.com/tagger/types"
	"encoding/json"
	"sort"
)

type TaggedSentence struct {
	Tokens []string `json:"tokens"`
	Tags   []string `json:"tags,omitempty"`
	Error  string   `json:"error,omitempty"`
}

type Response struct {
	Tid       string           `json:"tid"`
	Sentences []TaggedSentence `json:"sentences"`
}

// NewTaggingResult collects the tagged sentences, restores line order and
// marshals the response.
func NewTaggingResult() func(in <-chan types.Sentence, request Request) <-chan string {
	tgrLogger := logger.NewLogger("Response builder")

	return func(in <-chan types.Sentence, request Request) <-chan string {
		out := make(chan string, 1)
		go func() {
			defer close(out)

			var all []types.Sentence
			for sent := range in {
				all = append(all, sent)
			}
			sort.Slice(all, func(i, j int) bool { return all[i].Index < all[j].Index })

			response := Response{
				Tid:       request.Tid,
				Sentences: make([]TaggedSentence, len(all)),
			}
			for i, sent := range all {
				response.Sentences[i] = TaggedSentence{
					Tokens: sent.Tokens,
					Tags:   sent.Tags,
					Error:  sent.Err,
				}
			}

			b, err := json.Marshal(response)
			if err != nil {
				tgrLogger.Err(err).Str("tid", request.Tid).Msg("Failed to marshal response")
				return
			}
			out <- string(b)
		}()
		return out
	}
}
