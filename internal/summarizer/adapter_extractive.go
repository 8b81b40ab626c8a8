package summarizer

import (
	"context"
	"strings"
	"sync"

	"summaryd/internal/sentences"
)

// leadSentences is how many leading sentences the extractive runtime keeps.
const leadSentences = 2

// fallbackSummary is returned when no sentence can be extracted.
const fallbackSummary = "Could not generate a summary from the provided text."

// extractiveRuntime summarizes by keeping the document's leading sentences.
// It needs no weights, only the repository configs, and runs on any build.
type extractiveRuntime struct {
	once     sync.Once
	splitter *sentences.Splitter
	err      error
}

// NewExtractiveRuntime returns the lead-sentence runtime. A nil splitter
// selects the compiled-in English sentence parameters at bind time.
func NewExtractiveRuntime(splitter *sentences.Splitter) Runtime {
	return &extractiveRuntime{splitter: splitter}
}

func (r *extractiveRuntime) Name() string { return "extractive" }

func (r *extractiveRuntime) Bind(ctx context.Context, art Artifacts) (Session, error) {
	r.once.Do(func() {
		if r.splitter == nil {
			r.splitter, r.err = sentences.NewSplitter("")
		}
	})
	if r.err != nil {
		return nil, r.err
	}
	return &extractiveSession{splitter: r.splitter, keep: leadSentences}, nil
}

type extractiveSession struct {
	splitter *sentences.Splitter
	keep     int
}

func (s *extractiveSession) Generate(ctx context.Context, in Input, p GenerateParams) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sents := s.splitter.Split(in.Text)
	if len(sents) > s.keep {
		sents = sents[:s.keep]
	}
	out := strings.TrimSpace(strings.Join(sents, " "))
	if out == "" {
		return fallbackSummary, nil
	}
	return out, nil
}

func (s *extractiveSession) Close() error { return nil }
