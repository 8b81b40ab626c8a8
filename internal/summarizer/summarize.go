package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"summaryd/internal/textnorm"
	"summaryd/internal/tokenizer"
)

// Summarize runs the request pipeline: ensure the model is loaded, validate,
// normalize, tokenize (truncating to MaxInputTokens), generate, and
// detokenize (clipping to MaxOutputTokens and dropping special tokens).
//
// Errors are typed: *LoadError, ErrNoText, or *InferenceError.
func (s *Service) Summarize(ctx context.Context, text string) (summary string, err error) {
	if err := s.EnsureLoaded(ctx); err != nil {
		return "", err
	}
	m := s.model.Load()
	if m == nil {
		return "", &LoadError{RepoID: s.repoID, Err: errors.New("model not loaded")}
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}

	defer func() {
		if r := recover(); r != nil {
			summary, err = "", &InferenceError{Stage: "generate", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	norm := textnorm.Normalize(text)
	ids, err := m.Tokenizer.Encode(norm)
	if err != nil {
		return "", &InferenceError{Stage: "tokenize", Err: err}
	}
	ids, truncated := tokenizer.Truncate(ids, m.Params.MaxInputTokens)
	input := norm
	if truncated {
		inputTruncationsTotal.Inc()
		s.log.Debug().Int("max_input_tokens", m.Params.MaxInputTokens).Msg("input truncated")
		if input, err = tokenizer.DecodeSkippingSpecial(m.Tokenizer, ids); err != nil {
			return "", &InferenceError{Stage: "tokenize", Err: err}
		}
	}

	genCtx := ctx
	if s.inferTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.inferTimeout)
		defer cancel()
	}
	start := time.Now()
	out, err := m.Session.Generate(genCtx, Input{Text: input, Tokens: ids}, m.Params)
	generationDuration.WithLabelValues(m.Runtime).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", &InferenceError{Stage: "generate", Err: err}
	}

	outIDs, err := m.Tokenizer.Encode(out)
	if err != nil {
		return "", &InferenceError{Stage: "detokenize", Err: err}
	}
	outIDs, _ = tokenizer.Truncate(outIDs, m.Params.MaxOutputTokens)
	summary, err = tokenizer.DecodeSkippingSpecial(m.Tokenizer, outIDs)
	if err != nil {
		return "", &InferenceError{Stage: "detokenize", Err: err}
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", &InferenceError{Stage: "generate", Err: errors.New("runtime produced an empty summary")}
	}
	return summary, nil
}
