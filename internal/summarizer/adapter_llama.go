//go:build llama

package summarizer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaBuilt indicates this binary was compiled with real llama support.
const llamaBuilt = true

const llamaPrompt = "Summarize the following text in a few sentences.\n\nText: %s\n\nSummary:"

// llamaRuntime loads GGUF weights from the repository into llama.cpp.
type llamaRuntime struct {
	cfg LlamaConfig
}

// NewLlamaRuntime returns the in-process llama.cpp runtime.
func NewLlamaRuntime(cfg LlamaConfig) Runtime {
	return &llamaRuntime{cfg: cfg}
}

func (r *llamaRuntime) Name() string { return "llama" }

func (r *llamaRuntime) Bind(ctx context.Context, art Artifacts) (Session, error) {
	file := weightsFile(r.cfg, art)
	if file == "" {
		return nil, errors.New("llama runtime: no GGUF weights file configured (set llama_weights / SUMMARYD_LLAMA_WEIGHTS, or gguf_file in the repository's config.json)")
	}
	path, err := art.Fetch(ctx, file)
	if err != nil {
		return nil, err
	}
	m, err := llama.New(path, llama.SetContext(zn(r.cfg.CtxSize, 2048)))
	if err != nil {
		return nil, err
	}
	return &llamaSession{model: m, threads: zn(r.cfg.Threads, 4)}, nil
}

// llamaSession owns the loaded model. llama.cpp contexts are not reentrant,
// so generations on one session run one at a time.
type llamaSession struct {
	mu      sync.Mutex
	model   *llama.LLama
	threads int
}

func (s *llamaSession) Generate(ctx context.Context, in Input, p GenerateParams) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model == nil {
		return "", errors.New("llama model not initialized")
	}
	s.model.SetTokenCallback(func(string) bool {
		return ctx.Err() == nil
	})
	text, err := s.model.Predict(fmt.Sprintf(llamaPrompt, in.Text),
		llama.SetTokens(zn(p.MaxOutputTokens, 150)),
		llama.SetThreads(s.threads),
		llama.SetTemperature(0),
		llama.SetTopK(1),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return text, nil
}

func (s *llamaSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model != nil {
		s.model.Free()
		s.model = nil
	}
	return nil
}

func zn(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
