package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"corvustext.com/tagger/hmm"
)

// ErrNotFound distinguishes a missing corpus file from a failure while
// reading one, so callers can choose to degrade to an empty model instead
// of failing outright.
var ErrNotFound = errors.New("corpus file not found")

const maxLineSize = 1024 * 1024

// ReadTokens parses a training file into a flat token sequence, one
// sentence per line, with the start marker prepended to every line. Word
// files are lower-cased on load; tag files preserve case.
func ReadTokens(path string, lower bool) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var result []string
	for scanner.Scan() {
		line := scanner.Text()
		if lower {
			line = strings.ToLower(line)
		}
		result = append(result, hmm.StartMarker)
		result = append(result, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ReadSentences parses a file into per-line token sequences without start
// markers, the shape the decoder consumes.
func ReadSentences(path string, lower bool) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var result [][]string
	for scanner.Scan() {
		line := scanner.Text()
		if lower {
			line = strings.ToLower(line)
		}
		result = append(result, strings.Fields(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// StripMarkers removes start markers from a token sequence.
func StripMarkers(tokens []string) []string {
	result := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok == hmm.StartMarker {
			continue
		}
		result = append(result, tok)
	}
	return result
}
