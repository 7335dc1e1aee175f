package pipeline

import (
	"corvustext.com/tagger/corpus"
	"corvustext.com/tagger/hmm"
	"corvustext.com/tagger/logger"
	"corvustext.com/tagger/types"
	"errors"

	"github.com/rs/zerolog"
)

type DefaultTaggingParams struct {
	WordsPath     string  `json:"words_path"`
	TagsPath      string  `json:"tags_path"`
	UnseenPenalty float64 `json:"unseen_penalty"`
	// Options is consulted on every decode when set, which lets the API
	// adjust the penalty at runtime without rebuilding the pipeline.
	Options func() hmm.DecodeOptions `json:"-"`
}

func GetDefaultTaggingParams(cfg types.Configuration) DefaultTaggingParams {
	penalty := cfg.Decode.UnseenPenalty
	if penalty == 0 {
		penalty = hmm.DefaultUnseenPenalty
	}
	return DefaultTaggingParams{
		WordsPath:     cfg.Corpus.WordsFile,
		TagsPath:      cfg.Corpus.TagsFile,
		UnseenPenalty: penalty,
	}
}

// DefaultTagging trains a model from the configured corpus and assembles
// the tagging pipeline around it. The trained model is returned as well for
// drivers that decode outside the pipeline (interactive loop, accuracy
// runs).
func DefaultTagging(params DefaultTaggingParams) (Pipeline, hmm.Model, error) {
	tgrLogger := logger.NewLogger("HMM tagging pipeline")
	errLogger := tgrLogger.With().Caller().Logger()
	tgrLogger.Info().
		Interface("params", params).
		Msg("Starting HMM tagging pipeline (see parameters in 'params' field)")

	words, err := loadSequence(params.WordsPath, true, &tgrLogger)
	if err != nil {
		errLogger.Err(err).
			Str("words_path", params.WordsPath).
			Msg("Failed to read training words")
		return nil, hmm.Model{}, err
	}
	tags, err := loadSequence(params.TagsPath, false, &tgrLogger)
	if err != nil {
		errLogger.Err(err).
			Str("tags_path", params.TagsPath).
			Msg("Failed to read training tags")
		return nil, hmm.Model{}, err
	}

	model, err := hmm.NewModel(words, tags, hmm.WithUnseenPenalty(params.UnseenPenalty))
	if err != nil {
		errLogger.Err(err).
			Str("words_path", params.WordsPath).
			Str("tags_path", params.TagsPath).
			Msg("Failed to train model")
		return nil, hmm.Model{}, err
	}

	splitter := NewLineSplitter()
	tokenizer := NewTokenizer()
	tagger := NewHMMTagger(model, params.Options)
	buildResult := NewTaggingResult()

	ppln := func(request Request) <-chan string {
		return buildResult(tagger(tokenizer(splitter(request))), request)
	}
	return ppln, model, nil
}

// loadSequence applies the graceful-degradation policy: a missing corpus
// file yields an empty sequence and hence a degenerate model, while any
// other read failure aborts pipeline start.
func loadSequence(path string, lower bool, tgrLogger *zerolog.Logger) ([]string, error) {
	tokens, err := corpus.ReadTokens(path, lower)
	if err != nil {
		if errors.Is(err, corpus.ErrNotFound) {
			tgrLogger.Warn().Err(err).Msg("Corpus file missing, continuing with an empty sequence")
			return nil, nil
		}
		return nil, err
	}
	return tokens, nil
}
