package types

import (
	"corvustext.com/tagger/logger"
	"errors"
	"io/ioutil"
	"os"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	// pipeline type
	HMMTaggingPipeline = "hmm_tagging"
)

type CorpusConfig struct {
	WordsFile string `yaml:"words_file" json:"words_file"`
	TagsFile  string `yaml:"tags_file" json:"tags_file"`
}

type DecodeConfig struct {
	UnseenPenalty float64 `yaml:"unseen_penalty" json:"unseen_penalty"`
}

type Configuration struct {
	Name     string       `json:"name"`
	FilePath string       `json:"file_path"`
	Corpus   CorpusConfig `yaml:"corpus" json:"corpus"`
	Decode   DecodeConfig `yaml:"decode" json:"decode"`
	Pipeline string       `yaml:"pipeline" json:"pipeline"`
}

func LoadConfigurations(dirPath string) ([]Configuration, error) {
	tgrLogger := logger.NewLogger("LoadConfigurations")

	files, err := ioutil.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	configChan := make(chan Configuration, len(files))
	for _, f := range files {
		// Skip dirs and non-yaml files
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}

		wg.Add(1)
		go func(file os.FileInfo) {
			defer wg.Done()
			cfg := Configuration{
				Name:     strings.Split(file.Name(), ".yaml")[0],
				FilePath: path.Join(dirPath, file.Name()),
			}
			buf, err := ioutil.ReadFile(cfg.FilePath)
			if err != nil {
				tgrLogger.Err(err)
				return
			}
			if err := yaml.Unmarshal(buf, &cfg); err != nil {
				tgrLogger.Err(err)
				return
			}

			// check pipeline type
			if cfg.Pipeline != HMMTaggingPipeline {
				tgrLogger.Err(errors.New("wrong pipeline type"))
				return
			}

			configChan <- cfg
		}(f)
	}

	go func() {
		wg.Wait()
		close(configChan)
	}()

	configs := make([]Configuration, 0, len(configChan))
	for cfg := range configChan {
		configs = append(configs, cfg)
	}
	return configs, nil
}
