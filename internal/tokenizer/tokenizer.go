// Package tokenizer converts between text and model token ids.
//
// Token budgets are counted with a tiktoken BPE encoding, not the model
// repository's own SentencePiece vocabulary. Input and output limits
// (max_input_tokens, max_output_tokens) are therefore approximate: the same
// text may count to somewhat more or fewer tokens under the model's
// vocabulary.
package tokenizer

import (
	"strings"
)

// Tokenizer is the interface every tokenizer implementation satisfies.
type Tokenizer interface {
	// Encode converts text to token IDs.
	Encode(text string) ([]int32, error)
	// Decode converts token IDs back to text.
	Decode(tokens []int32) (string, error)
	// IsSpecialToken reports whether id is a control token (end of text, padding, ...).
	IsSpecialToken(token int32) bool
	// Name identifies the tokenizer (encoding or vocabulary name).
	Name() string
}

// Truncate keeps at most max leading tokens. It reports whether tokens were dropped.
// A non-positive max disables truncation.
func Truncate(tokens []int32, max int) ([]int32, bool) {
	if max <= 0 || len(tokens) <= max {
		return tokens, false
	}
	return tokens[:max], true
}

// DecodeSkippingSpecial decodes tokens after removing special tokens.
// Byte sequences split by truncation are dropped instead of rendered invalid.
func DecodeSkippingSpecial(t Tokenizer, tokens []int32) (string, error) {
	kept := make([]int32, 0, len(tokens))
	for _, tok := range tokens {
		if t.IsSpecialToken(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	text, err := t.Decode(kept)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(text, ""), nil
}
