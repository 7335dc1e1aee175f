package api

import (
	"corvustext.com/tagger/hmm"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"sync"

	jsonpatch "github.com/evanphx/json-patch"
)

// OptionsStore holds the runtime decode options. The pipeline reads them
// per decode call through Current, the API mutates them with JSON merge
// patches.
type OptionsStore struct {
	mu   sync.RWMutex
	raw  []byte
	opts hmm.DecodeOptions
}

func NewOptionsStore(defaults hmm.DecodeOptions) (*OptionsStore, error) {
	raw, err := json.Marshal(defaults)
	if err != nil {
		return nil, err
	}
	return &OptionsStore{raw: raw, opts: defaults}, nil
}

func (store *OptionsStore) Current() hmm.DecodeOptions {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.opts
}

// Patch merges a JSON merge-patch document into the stored options.
func (store *OptionsStore) Patch(patch []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	merged, err := jsonpatch.MergePatch(store.raw, patch)
	if err != nil {
		return err
	}
	var opts hmm.DecodeOptions
	if err := json.Unmarshal(merged, &opts); err != nil {
		return err
	}
	store.raw = merged
	store.opts = opts
	return nil
}

// HandleConfig serves GET (current options) and PATCH (merge-patch update)
// on the config endpoint.
func (store *OptionsStore) HandleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	logger := makeRequestLogger(r)

	switch r.Method {
	case "GET":
		store.mu.RLock()
		raw := store.raw
		store.mu.RUnlock()
		_, _ = w.Write(raw)
	case "PATCH":
		patch, err := ioutil.ReadAll(r.Body)
		if err != nil {
			logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not read request body")
			http.Error(w, "", http.StatusBadRequest)
			return
		}
		if err := store.Patch(patch); err != nil {
			logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not apply options patch")
			http.Error(w, "", http.StatusBadRequest)
			return
		}
		logger.Info().Msg("Updated decode options")
		store.mu.RLock()
		raw := store.raw
		store.mu.RUnlock()
		_, _ = w.Write(raw)
	default:
		logger.Err(nil).Int("status", http.StatusMethodNotAllowed).Msg("Only 'GET' and 'PATCH' methods are allowed here")
		http.Error(w, "", http.StatusMethodNotAllowed)
	}
}
