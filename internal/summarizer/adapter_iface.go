package summarizer

import (
	"context"

	"summaryd/internal/hub"
)

// Runtime binds fetched repository artifacts to an executable model.
// Concrete implementations (extractive, openai, llama.cpp) satisfy this interface.
type Runtime interface {
	// Name identifies the runtime in logs and /status.
	Name() string
	// Bind prepares a CPU inference session for the repository snapshot.
	// Runtimes needing weights beyond the configs pull them through art.Fetch.
	Bind(ctx context.Context, art Artifacts) (Session, error)
}

// Session is a bound model. It is shared by concurrent requests and must be
// safe for concurrent use.
type Session interface {
	// Generate produces summary text for the (already truncated) input.
	// Implementations must return when ctx is canceled.
	Generate(ctx context.Context, in Input, p GenerateParams) (string, error)
	// Close releases any resources associated with the session.
	Close() error
}

// Artifacts is what a runtime receives at bind time.
type Artifacts struct {
	Snapshot *hub.Snapshot
	// Fetch resolves an extra repository file into the local cache.
	Fetch func(ctx context.Context, file string) (string, error)
}

// Input is the normalized, truncated document.
type Input struct {
	Text   string
	Tokens []int32
}

// GenerateParams captures decoding parameters passed to the runtime.
type GenerateParams struct {
	MaxInputTokens  int
	MaxOutputTokens int
	NumBeams        int
	EarlyStopping   bool
}
