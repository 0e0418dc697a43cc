/*
PURPOSE:
  Synchronous paired timer: times each prompt through both backends,
  one request at a time, to produce the comparison baseline.

REQUIREMENTS:
  User-specified:
  - One row per prompt, in flattened order, with compiled and reference
    latencies side by side.
  - Warm both backends up before measuring.

  Implementation-discovered:
  - Warmup mirrors the reference behavior: ten rounds of "test "
    repeated 1..10 through each backend, results discarded.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/tokenizer.Codec, internal/model.Request

ERROR HANDLING:
  - First backend error aborts the whole pass; a partial table would
    skew the aggregate statistics.

IMPLEMENTATION RULES:
  - No concurrency anywhere in this file. The serial baseline is the
    point.

USAGE:
  records, err := engine.BenchmarkSync(compiled, ref, reqs, true)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/async.go
  - internal/stats/stats.go

MAINTENANCE:
  - Keep warmup identical for both backends so neither gets an unfair
    cold start.
*/

package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/daryltucker/tokbench/internal/model"
	"github.com/daryltucker/tokbench/internal/tokenizer"
)

// Warmup primes both codecs with short synthetic prompts.
func Warmup(codecs ...tokenizer.Codec) error {
	for repeat := 1; repeat <= 10; repeat++ {
		text := strings.Repeat("test ", repeat)
		for _, c := range codecs {
			if _, err := c.Encode(text); err != nil {
				return fmt.Errorf("warmup failed on %s: %w", c.Name(), err)
			}
		}
	}
	return nil
}

// BenchmarkSync times each request sequentially through the compiled
// and reference codecs and returns one Record per request, in request
// order. The CompiledAsync column is filled in later from the async run.
func BenchmarkSync(compiled, reference tokenizer.Codec, reqs []model.Request, warmup bool) ([]model.Record, error) {
	if warmup {
		if err := Warmup(compiled, reference); err != nil {
			return nil, err
		}
	}

	records := make([]model.Record, 0, len(reqs))
	for _, req := range reqs {
		start := time.Now()
		if _, err := compiled.Encode(req.Text); err != nil {
			return nil, fmt.Errorf("compiled encode failed at request %d: %w", req.Index, err)
		}
		compiledElapsed := time.Since(start)

		start = time.Now()
		if _, err := reference.Encode(req.Text); err != nil {
			return nil, fmt.Errorf("reference encode failed at request %d: %w", req.Index, err)
		}
		referenceElapsed := time.Since(start)

		records = append(records, model.Record{
			Prompt:    req.Text,
			Compiled:  compiledElapsed,
			Reference: referenceElapsed,
			PromptLen: len(req.Text),
		})
	}
	return records, nil
}
