/*
PURPOSE:
  Reference tokenizer backend built on tiktoken.
  This is the baseline the compiled backend is compared against.

REQUIREMENTS:
  User-specified:
  - Accept a model id (e.g. "gpt-4o") or a raw encoding name
    (e.g. "cl100k_base").

  Implementation-discovered:
  - tiktoken.EncodingForModel fails for raw encoding names; fall back to
    GetEncoding so both spellings work.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Wrapped by: internal/tokenizer/compiled.go

ERROR HANDLING:
  - Construction returns an error when the model id resolves to nothing.
  - Encode itself cannot fail in tiktoken; the error return exists to
    satisfy the Codec contract uniformly.

IMPLEMENTATION RULES:
  - Use github.com/pkoukk/tiktoken-go.
  - No special-token handling; benchmark text is plain prose.

USAGE:
  ref, err := tokenizer.NewReference("gpt-4o")
  ids, _ := ref.Encode("hello")

SELF-HEALING INSTRUCTIONS:
  - If the BPE files cannot be downloaded, set TIKTOKEN_CACHE_DIR to a
    pre-populated cache directory.

RELATED FILES:
  - internal/tokenizer/codec.go

MAINTENANCE:
  - Update the fallback order if tiktoken adds new lookup helpers.
*/

package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Reference is the tiktoken-backed baseline Codec.
type Reference struct {
	enc  *tiktoken.Tiktoken
	name string
}

// NewReference resolves modelID as a model name first, then as an
// encoding name.
func NewReference(modelID string) (*Reference, error) {
	enc, err := tiktoken.EncodingForModel(modelID)
	if err != nil {
		enc, err = tiktoken.GetEncoding(modelID)
	}
	if err != nil {
		return nil, fmt.Errorf("unknown model or encoding %q: %w", modelID, err)
	}
	return &Reference{enc: enc, name: "reference"}, nil
}

// Encode tokenizes text with the underlying tiktoken encoding.
func (r *Reference) Encode(text string) ([]int, error) {
	return r.enc.Encode(text, nil, nil), nil
}

// Name implements Codec.
func (r *Reference) Name() string {
	return r.name
}
