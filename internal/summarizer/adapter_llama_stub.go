//go:build !llama

package summarizer

// This file provides a no-CGO stub for the llama runtime. It is compiled when
// the 'llama' build tag is NOT set, keeping default builds and CI CGO-free.

import "context"

// llamaBuilt indicates this binary was compiled without llama support.
const llamaBuilt = false

type llamaRuntime struct {
	cfg LlamaConfig
}

// NewLlamaRuntime returns a stub that refuses to bind without the 'llama' build tag.
func NewLlamaRuntime(cfg LlamaConfig) Runtime {
	return &llamaRuntime{cfg: cfg}
}

func (r *llamaRuntime) Name() string { return "llama" }

func (r *llamaRuntime) Bind(ctx context.Context, art Artifacts) (Session, error) {
	return nil, ErrDependencyUnavailable("llama support not built (missing 'llama' build tag)")
}
