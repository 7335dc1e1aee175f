package tasks

import (
	"corvustext.com/tagger/redisclient"
	"corvustext.com/tagger/utils"
	"errors"
	"fmt"
	"time"
)

const ResultsDB redisclient.DB = 3

const resultTTL = 24 * time.Hour

// ResultCache stores finished tagging responses keyed by a hash of the
// request text, so redelivered or duplicated tasks skip the pipeline.
type ResultCache struct {
	client redisclient.Client
}

// ResultKey derives the cache key for a request text.
func ResultKey(text string) string {
	return fmt.Sprintf("tags:%016x", utils.HashString(text))
}

// Get returns the cached response for the text, reporting whether there was
// one.
func (cache ResultCache) Get(text string) (string, bool, error) {
	b, err := cache.client.GetCached(ResultKey(text))
	if err != nil {
		if errors.Is(err, redisclient.ErrCacheMiss) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(b), true, nil
}

// Put stores the response for the text with the cache TTL.
func (cache ResultCache) Put(text, result string) error {
	return cache.client.SetCached(ResultKey(text), []byte(result), resultTTL)
}
