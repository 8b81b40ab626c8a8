package sentences

import (
	"fmt"
	"os"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Splitter breaks text into sentences. Safe for concurrent use.
type Splitter struct {
	tok *sentences.DefaultSentenceTokenizer
}

// NewSplitter loads punkt parameters from bundlePath, or the compiled-in
// English parameters when bundlePath is empty.
func NewSplitter(bundlePath string) (*Splitter, error) {
	var storage *sentences.Storage
	if bundlePath != "" {
		b, err := os.ReadFile(bundlePath)
		if err != nil {
			return nil, fmt.Errorf("read sentence bundle: %w", err)
		}
		storage, err = sentences.LoadTraining(b)
		if err != nil {
			return nil, fmt.Errorf("parse sentence bundle: %w", err)
		}
	}
	tok, err := english.NewSentenceTokenizer(storage)
	if err != nil {
		return nil, fmt.Errorf("sentence tokenizer: %w", err)
	}
	return &Splitter{tok: tok}, nil
}

// Split returns the trimmed, non-empty sentences of text.
func (s *Splitter) Split(text string) []string {
	var out []string
	for _, sent := range s.tok.Tokenize(text) {
		if t := strings.TrimSpace(sent.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}
