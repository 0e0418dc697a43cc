/*
PURPOSE:
  Defines the uniform contract both tokenizer backends satisfy.
  Everything downstream (sync timer, infer queue) speaks only Codec.

REQUIREMENTS:
  User-specified:
  - Two interchangeable backends: a compiled/optimized one and a reference one.

  Implementation-discovered:
  - Backends are invoked concurrently from the infer queue workers,
    so every Codec implementation must be safe for concurrent Encode calls.

ARCHITECTURE INTEGRATION:
  - Implemented by: internal/tokenizer (Reference, Compiled)
  - Consumed by: internal/engine

ERROR HANDLING:
  - Encode returns an explicit error; callers treat it as fatal for the run.

IMPLEMENTATION RULES:
  - Accept interfaces, return structs.

USAGE:
  ids, err := codec.Encode("hello world")

SELF-HEALING INSTRUCTIONS:
  - New backends only need to implement this interface.

RELATED FILES:
  - internal/tokenizer/reference.go
  - internal/tokenizer/compiled.go

MAINTENANCE:
  - Keep the interface minimal; widen only when the engine needs it.
*/

package tokenizer

// Codec is the synchronous tokenization contract.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Encode tokenizes text and returns the token ids.
	Encode(text string) ([]int, error)
	// Name identifies the backend in logs and reports.
	Name() string
}
