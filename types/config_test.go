package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigurations(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brown.yaml"), []byte(
		"pipeline: hmm_tagging\n"+
			"corpus:\n"+
			"  words_file: /data/brown_words.txt\n"+
			"  tags_file: /data/brown_tags.txt\n"+
			"decode:\n"+
			"  unseen_penalty: -25\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other_pipeline.yaml"), []byte(
		"pipeline: something_else\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644))

	configs, err := LoadConfigurations(dir)
	require.NoError(t, err)
	require.Len(t, configs, 1)

	cfg := configs[0]
	assert.Equal(t, "brown", cfg.Name)
	assert.Equal(t, filepath.Join(dir, "brown.yaml"), cfg.FilePath)
	assert.Equal(t, HMMTaggingPipeline, cfg.Pipeline)
	assert.Equal(t, "/data/brown_words.txt", cfg.Corpus.WordsFile)
	assert.Equal(t, "/data/brown_tags.txt", cfg.Corpus.TagsFile)
	assert.Equal(t, -25.0, cfg.Decode.UnseenPenalty)
}

func TestLoadConfigurationsMissingDir(t *testing.T) {
	_, err := LoadConfigurations(filepath.Join(t.TempDir(), "no-such-dir"))
	assert.Error(t, err)
}
