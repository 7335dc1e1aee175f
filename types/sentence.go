package types

// Sentence is one line of a tagging request as it moves through the
// pipeline stages. Index keeps the original line order so the response
// builder can reassemble results after the fan-out stages.
type Sentence struct {
	Index  int
	Text   string
	Tokens []string
	Tags   []string
	Err    string
}
