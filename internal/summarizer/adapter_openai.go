package summarizer

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIConfig configures the OpenAI-compatible completion runtime
// (vLLM, TGI, llama-server).
type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	// Model defaults to the repository id, which is how vLLM and TGI name
	// models served straight from the hub.
	Model      string
	HTTPClient *http.Client
	MaxRetries int
}

type openaiRuntime struct {
	cfg OpenAIConfig
}

// NewOpenAIRuntime returns a runtime that delegates generation to a remote
// OpenAI-compatible server using the completions API with beam search.
func NewOpenAIRuntime(cfg OpenAIConfig) Runtime {
	return &openaiRuntime{cfg: cfg}
}

func (r *openaiRuntime) Name() string { return "openai" }

func (r *openaiRuntime) Bind(ctx context.Context, art Artifacts) (Session, error) {
	if strings.TrimSpace(r.cfg.BaseURL) == "" {
		return nil, errors.New("openai runtime: base URL is required")
	}
	model := r.cfg.Model
	if model == "" && art.Snapshot != nil {
		model = art.Snapshot.RepoID
	}
	key := r.cfg.APIKey
	if key == "" {
		key = "EMPTY"
	}
	opts := []option.RequestOption{
		option.WithBaseURL(strings.TrimRight(r.cfg.BaseURL, "/") + "/"),
		option.WithAPIKey(key),
		option.WithMaxRetries(r.cfg.MaxRetries),
	}
	if r.cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(r.cfg.HTTPClient))
	}
	return &openaiSession{client: openai.NewClient(opts...), model: model}, nil
}

type openaiSession struct {
	client openai.Client
	model  string
}

func (s *openaiSession) Generate(ctx context.Context, in Input, p GenerateParams) (string, error) {
	resp, err := s.client.Completions.New(ctx, openai.CompletionNewParams{
		Model:       openai.CompletionNewParamsModel(s.model),
		Prompt:      openai.CompletionNewParamsPromptUnion{OfString: openai.String(in.Text)},
		MaxTokens:   openai.Int(int64(p.MaxOutputTokens)),
		Temperature: openai.Float(0),
		N:           openai.Int(1),
		BestOf:      openai.Int(int64(p.NumBeams)),
	},
		// Beam search knobs understood by vLLM-style servers.
		option.WithJSONSet("use_beam_search", p.NumBeams > 1),
		option.WithJSONSet("early_stopping", p.EarlyStopping),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion choices are missing")
	}
	return resp.Choices[0].Text, nil
}

func (s *openaiSession) Close() error { return nil }
