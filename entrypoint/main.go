package main

import (
	"bufio"
	"corvustext.com/tagger/api"
	"corvustext.com/tagger/corpus"
	"corvustext.com/tagger/eval"
	"corvustext.com/tagger/hmm"
	"corvustext.com/tagger/logger"
	"corvustext.com/tagger/pipeline"
	"corvustext.com/tagger/types"
	"corvustext.com/tagger/worker"
	"flag"
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"net/http"
	"os"
	"strings"
	"time"
)

type Config struct {
	ConfigPath    string `envconfig:"TGR_CONFIG_PATH" required:"true"`
	RestAPIActive bool   `envconfig:"TGR_REST_API_ACTIVE" default:"false"`
	RestAPIPort   string `envconfig:"TGR_REST_API_PORT" default:"10000"`
}

const pipelineStartMaxRetries = 5

type loadedPipeline struct {
	ppln    pipeline.Pipeline
	model   hmm.Model
	options *api.OptionsStore
}

func main() {
	logger.SetupLogging()
	tgrLogger := logger.NewLogger("Main")
	fatalErrLogger := tgrLogger.Fatal().Caller()
	accuracyWords := flag.String("accuracy-words", "", "held-out words file, tag it and report accuracy")
	accuracyTags := flag.String("accuracy-tags", "", "gold tags file for the accuracy run")
	interactive := flag.Bool("interactive", false, "tag sentences typed on stdin")
	flag.Parse()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		fatalErrLogger.Err(err).Msg("Failed to read environment")
		os.Exit(1)
	}

	//Load Pipeline
	pipelineChannel := make(chan loadedPipeline)
	go func() {
		for retry := 0; retry < pipelineStartMaxRetries; retry++ {
			cfgs, err := types.LoadConfigurations(config.ConfigPath)
			if err != nil {
				tgrLogger.Err(err).Msg("Failed to load configurations. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			if len(cfgs) == 0 {
				tgrLogger.Error().Msg("No tagging configurations found. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			tgrLogger.Info().Msgf("Loaded %d configurations", len(cfgs))
			tgrLogger.Info().Msg("Starting pipeline loading")

			params := pipeline.GetDefaultTaggingParams(cfgs[0])
			optionsStore, err := api.NewOptionsStore(hmm.DecodeOptions{UnseenPenalty: params.UnseenPenalty})
			if err != nil {
				fatalErrLogger.Err(err).Msg("Failed to initialize options store")
				os.Exit(1)
			}
			params.Options = optionsStore.Current
			ppln, model, err := pipeline.DefaultTagging(params)
			if err != nil {
				tgrLogger.Err(err).Msg("Failed to start HMM tagging pipeline. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			tgrLogger.Info().Msg("Pipeline loaded")
			pipelineChannel <- loadedPipeline{ppln: ppln, model: model, options: optionsStore}
			return
		}
		fatalErrLogger.Msg("Could not start pipeline after 5 retries, exiting")
		os.Exit(1)
	}()

	// block until pipeline loads
	loaded := <-pipelineChannel

	if *accuracyWords != "" || *accuracyTags != "" {
		if err := runAccuracy(loaded.model, *accuracyWords, *accuracyTags, &tgrLogger); err != nil {
			fatalErrLogger.Err(err).Msg("Accuracy run failed")
			os.Exit(1)
		}
		return
	}

	if *interactive {
		runInteractive(loaded.model, loaded.options.Current)
		return
	}

	if config.RestAPIActive {
		go func() {
			tgrLogger.Info().Msg("Starting API service")
			apiRequest := &api.Request{
				Pipeline: loaded.ppln,
			}
			http.HandleFunc("/", apiRequest.ProcessData)
			http.HandleFunc("/config", loaded.options.HandleConfig)
			host := fmt.Sprintf(":%s", config.RestAPIPort)
			tgrLogger.Info().Msgf("REST API on %s", host)
			err := http.ListenAndServe(host, nil)
			fatalErrLogger.Err(err).Msg("REST API stopped with error")
		}()
	}

	tgrLogger.Info().Msg("Start tagger worker")
	for {
		rmqWorker, err := worker.New(loaded.ppln)
		if err != nil {
			tgrLogger.Fatal().Err(err).Msg("Could not initialize RMQ worker")
			os.Exit(1)
		}
		err = rmqWorker.StartWorker()
		if err != nil {
			tgrLogger.Err(err).Msg("Worker returned with error. Launching new in 5 seconds")
			time.Sleep(5 * time.Second)
		}
	}
}

// runAccuracy tags a held-out words file and scores it against the aligned
// gold tags file.
func runAccuracy(model hmm.Model, wordsPath, tagsPath string, tgrLogger *zerolog.Logger) error {
	if wordsPath == "" || tagsPath == "" {
		return fmt.Errorf("both -accuracy-words and -accuracy-tags are required")
	}
	sentences, err := corpus.ReadSentences(wordsPath, true)
	if err != nil {
		return err
	}
	gold, err := corpus.ReadTokens(tagsPath, false)
	if err != nil {
		return err
	}
	var predicted []string
	for _, tokens := range sentences {
		tags, err := model.Decode(tokens)
		if err != nil {
			return err
		}
		predicted = append(predicted, tags...)
	}
	accuracy, err := eval.Accuracy(predicted, corpus.StripMarkers(gold))
	if err != nil {
		return err
	}
	tgrLogger.Info().
		Float64("accuracy", accuracy).
		Int("tags", len(predicted)).
		Msg("Finished accuracy run")
	return nil
}

// runInteractive reads sentences from stdin line by line and prints the
// guessed tags.
func runInteractive(model hmm.Model, opts func() hmm.DecodeOptions) {
	tagger := hmm.NewTagger(model, opts)
	fmt.Println("Enter a sentence to have its parts of speech guessed")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		tokens := strings.Fields(strings.ToLower(scanner.Text()))
		tags, err := tagger(tokens)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Println(strings.Join(tags, " "))
	}
}
