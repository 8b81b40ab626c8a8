package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr" env:"ADDR"`

	RepoID      string `json:"repo_id" yaml:"repo_id" toml:"repo_id" env:"REPO_ID"`
	Revision    string `json:"revision" yaml:"revision" toml:"revision" env:"REVISION"`
	HubEndpoint string `json:"hub_endpoint" yaml:"hub_endpoint" toml:"hub_endpoint" env:"HUB_ENDPOINT"`
	HubToken    string `json:"hub_token" yaml:"hub_token" toml:"hub_token" env:"HUB_TOKEN"`
	CacheDir    string `json:"cache_dir" yaml:"cache_dir" toml:"cache_dir" env:"CACHE_DIR"`
	DataDir     string `json:"data_dir" yaml:"data_dir" toml:"data_dir" env:"DATA_DIR"`
	// SentencesURL is the punkt bundle fetched into DataDir at startup.
	// "off" skips the download and uses the embedded bundle.
	SentencesURL string `json:"sentences_url" yaml:"sentences_url" toml:"sentences_url" env:"SENTENCES_URL"`

	Runtime           string `json:"runtime" yaml:"runtime" toml:"runtime" env:"RUNTIME"`
	TokenizerEncoding string `json:"tokenizer_encoding" yaml:"tokenizer_encoding" toml:"tokenizer_encoding" env:"TOKENIZER_ENCODING"`
	MaxInputTokens    int    `json:"max_input_tokens" yaml:"max_input_tokens" toml:"max_input_tokens" env:"MAX_INPUT_TOKENS"`
	MaxOutputTokens   int    `json:"max_output_tokens" yaml:"max_output_tokens" toml:"max_output_tokens" env:"MAX_OUTPUT_TOKENS"`
	NumBeams          int    `json:"num_beams" yaml:"num_beams" toml:"num_beams" env:"NUM_BEAMS"`
	EarlyStopping     *bool  `json:"early_stopping" yaml:"early_stopping" toml:"early_stopping" env:"EARLY_STOPPING"`

	OpenAIBaseURL string `json:"openai_base_url" yaml:"openai_base_url" toml:"openai_base_url" env:"OPENAI_BASE_URL"`
	OpenAIAPIKey  string `json:"openai_api_key" yaml:"openai_api_key" toml:"openai_api_key" env:"OPENAI_API_KEY"`
	OpenAIModel   string `json:"openai_model" yaml:"openai_model" toml:"openai_model" env:"OPENAI_MODEL"`

	// LlamaWeights names the GGUF file in the repository for the llama runtime.
	LlamaWeights string `json:"llama_weights" yaml:"llama_weights" toml:"llama_weights" env:"LLAMA_WEIGHTS"`
	LlamaThreads int    `json:"llama_threads" yaml:"llama_threads" toml:"llama_threads" env:"LLAMA_THREADS"`
	LlamaCtx     int    `json:"llama_ctx" yaml:"llama_ctx" toml:"llama_ctx" env:"LLAMA_CTX"`

	MaxBodyBytes        int64 `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"MAX_BODY_BYTES"`
	InferTimeoutSeconds int   `json:"infer_timeout_seconds" yaml:"infer_timeout_seconds" toml:"infer_timeout_seconds" env:"INFER_TIMEOUT_SECONDS"`
	FetchTimeoutSeconds int   `json:"fetch_timeout_seconds" yaml:"fetch_timeout_seconds" toml:"fetch_timeout_seconds" env:"FETCH_TIMEOUT_SECONDS"`

	LogLevel    string   `json:"log_level" yaml:"log_level" toml:"log_level" env:"LOG_LEVEL"`
	LogFormat   string   `json:"log_format" yaml:"log_format" toml:"log_format" env:"LOG_FORMAT"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
