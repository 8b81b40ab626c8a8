package summarizer

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"summaryd/internal/hub"
	"summaryd/internal/sentences"
	"summaryd/internal/tokenizer"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultRepoID          = "TheOCEAN/summarizer-portable"
	DefaultRuntime         = "extractive"
	defaultMaxInputTokens  = 1024
	defaultMaxOutputTokens = 150
	defaultNumBeams        = 4
)

// Config encapsulates all tunables for Service construction.
type Config struct {
	RepoID   string
	Revision string
	// Hub fetches repository artifacts. Required.
	Hub *hub.Client

	// RuntimeName selects a runtime: extractive, openai or llama.
	// Runtime, when set, takes precedence (tests, embedding).
	RuntimeName string
	Runtime     Runtime

	// TokenizerEncoding overrides the encoding named by the repository.
	TokenizerEncoding string
	// NewTokenizer builds a tokenizer for an encoding; defaults to tiktoken.
	NewTokenizer func(encoding string) (tokenizer.Tokenizer, error)

	MaxInputTokens  int
	MaxOutputTokens int
	NumBeams        int
	// EarlyStopping is a pointer so an explicit false survives defaulting.
	EarlyStopping *bool

	// InferTimeout bounds one generation (0 disables).
	InferTimeout time.Duration
	// FetchTimeout bounds one full load from the hub (0 disables).
	FetchTimeout time.Duration

	Splitter *sentences.Splitter
	OpenAI   OpenAIConfig
	Llama    LlamaConfig

	Logger zerolog.Logger
}

// New constructs a Service from Config. No network I/O happens here; the
// model is fetched on the first EnsureLoaded call.
func New(cfg Config) (*Service, error) {
	if cfg.Hub == nil {
		return nil, fmt.Errorf("summarizer: hub client is required")
	}
	if cfg.RepoID == "" {
		cfg.RepoID = DefaultRepoID
	}
	if cfg.Revision == "" {
		cfg.Revision = hub.DefaultRevision
	}
	params := GenerateParams{
		MaxInputTokens:  cfg.MaxInputTokens,
		MaxOutputTokens: cfg.MaxOutputTokens,
		NumBeams:        cfg.NumBeams,
		EarlyStopping:   true,
	}
	if params.MaxInputTokens <= 0 {
		params.MaxInputTokens = defaultMaxInputTokens
	}
	if params.MaxOutputTokens <= 0 {
		params.MaxOutputTokens = defaultMaxOutputTokens
	}
	if params.NumBeams <= 0 {
		params.NumBeams = defaultNumBeams
	}
	if cfg.EarlyStopping != nil {
		params.EarlyStopping = *cfg.EarlyStopping
	}
	rt := cfg.Runtime
	if rt == nil {
		var err error
		rt, err = NewRuntime(cfg.RuntimeName, cfg)
		if err != nil {
			return nil, err
		}
	}
	newTok := cfg.NewTokenizer
	if newTok == nil {
		newTok = func(enc string) (tokenizer.Tokenizer, error) { return tokenizer.NewTikToken(enc) }
	}
	return &Service{
		repoID:       cfg.RepoID,
		revision:     cfg.Revision,
		hub:          cfg.Hub,
		runtime:      rt,
		encoding:     cfg.TokenizerEncoding,
		newTokenizer: newTok,
		params:       params,
		inferTimeout: cfg.InferTimeout,
		fetchTimeout: cfg.FetchTimeout,
		log:          cfg.Logger.With().Str("component", "summarizer").Logger(),
		startTime:    time.Now(),
		state:        StateUnloaded,
	}, nil
}

// NewRuntime builds a runtime by name.
func NewRuntime(name string, cfg Config) (Runtime, error) {
	switch name {
	case "", "extractive":
		return NewExtractiveRuntime(cfg.Splitter), nil
	case "openai":
		return NewOpenAIRuntime(cfg.OpenAI), nil
	case "llama":
		return NewLlamaRuntime(cfg.Llama), nil
	default:
		return nil, fmt.Errorf("summarizer: unknown runtime %q (want extractive, openai or llama)", name)
	}
}
