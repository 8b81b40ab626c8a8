package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// DefaultEncoding is used when neither config nor repository names one.
const DefaultEncoding = "cl100k_base"

// specialCandidates are the control strings defined by the tiktoken encodings.
var specialCandidates = []string{
	"<|endoftext|>",
	"<|fim_prefix|>",
	"<|fim_middle|>",
	"<|fim_suffix|>",
	"<|endofprompt|>",
}

var offlineOnce sync.Once

// UseOfflineEncodings makes tiktoken read BPE ranks embedded in the binary
// instead of downloading them on first use.
func UseOfflineEncodings() {
	offlineOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})
}

// TikToken wraps pkoukk/tiktoken-go.
type TikToken struct {
	encoding *tiktoken.Tiktoken
	name     string
	special  map[int32]struct{}
}

// NewTikToken creates a tokenizer for a named encoding such as "cl100k_base".
func NewTikToken(encodingName string) (*TikToken, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding %q: %w", encodingName, err)
	}
	t := &TikToken{encoding: encoding, name: encodingName, special: make(map[int32]struct{})}
	for _, s := range specialCandidates {
		ids := encoding.Encode(s, []string{"all"}, nil)
		if len(ids) == 1 {
			t.special[int32(ids[0])] = struct{}{} //nolint:gosec // vocab size < 2^31
		}
	}
	return t, nil
}

// Encode converts text to token IDs. Control strings in the input are
// encoded as ordinary text.
func (t *TikToken) Encode(text string) (out []int32, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("tiktoken encode: %v", r)
		}
	}()
	tokens := t.encoding.Encode(text, nil, nil)
	out = make([]int32, len(tokens))
	for i, tok := range tokens {
		out[i] = int32(tok) //nolint:gosec // vocab size < 2^31
	}
	return out, nil
}

// Decode converts token IDs back to text.
func (t *TikToken) Decode(tokens []int32) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = "", fmt.Errorf("tiktoken decode: %v", r)
		}
	}()
	ints := make([]int, len(tokens))
	for i, tok := range tokens {
		ints[i] = int(tok)
	}
	return t.encoding.Decode(ints), nil
}

// IsSpecialToken reports whether token is one of the encoding's control tokens.
func (t *TikToken) IsSpecialToken(token int32) bool {
	_, ok := t.special[token]
	return ok
}

// Name returns the encoding name.
func (t *TikToken) Name() string { return t.name }
