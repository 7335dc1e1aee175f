package pipeline

// Request is one tagging job: raw text, one sentence per line.
type Request struct {
	Text string `json:"text"`
	Tid  string `json:"tid"`
}

type Pipeline func(request Request) <-chan string
