package hub

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Well-known repository file names.
const (
	ConfigFile          = "config.json"
	TokenizerConfigFile = "tokenizer_config.json"
)

// ModelConfig is the subset of config.json needed to bind a runtime.
type ModelConfig struct {
	ModelType             string   `json:"model_type"`
	Architectures         []string `json:"architectures"`
	IsEncoderDecoder      bool     `json:"is_encoder_decoder"`
	MaxPositionEmbeddings int      `json:"max_position_embeddings"`
	// GGUFFile names a llama.cpp weights file inside the repository.
	GGUFFile string `json:"gguf_file,omitempty"`
}

// TokenizerConfig mirrors tokenizer_config.json.
type TokenizerConfig struct {
	TokenizerClass string `json:"tokenizer_class"`
	// RawModelMaxLength is kept as a number literal: transformers writes
	// 1e30 when a tokenizer has no length limit.
	RawModelMaxLength json.Number `json:"model_max_length"`
	// TiktokenEncoding selects a BPE encoding when the repository ships one.
	TiktokenEncoding string `json:"tiktoken_encoding,omitempty"`
}

// ModelMaxLength returns the tokenizer's input limit, or 0 when it is
// unset or too large to be a real limit.
func (c TokenizerConfig) ModelMaxLength() int {
	if c.RawModelMaxLength == "" {
		return 0
	}
	f, err := c.RawModelMaxLength.Float64()
	if err != nil || f <= 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

func decodeJSONFile(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
