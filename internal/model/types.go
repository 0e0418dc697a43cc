/*
PURPOSE:
  Defines the core data structures used throughout Tokbench.
  These models represent benchmark requests, correlation tickets, and
  per-prompt timing results.

REQUIREMENTS:
  User-specified:
  - Record compiled, reference, and compiled-async latencies per prompt.
  - Correlate async completions back to the originating request by index.

  Implementation-discovered:
  - Need JSON tags for the JSONL output writer.
  - time.Duration gives nanosecond precision (perf_counter equivalent).

ARCHITECTURE INTEGRATION:
  - Used by: internal/dataset, internal/engine, internal/stats, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Ticket is immutable once issued; it is the only correlation key.

USAGE:
  req := model.Request{Index: 0, Text: "hello"}
  t := model.Ticket{Index: req.Index, Start: time.Now()}

SELF-HEALING INSTRUCTIONS:
  - If new metrics are needed, add field and update CSV/JSONL writers.

RELATED FILES:
  - internal/output/csv.go
  - internal/engine/async.go

MAINTENANCE:
  - Update when adding new metrics to capture.
*/

package model

import (
	"time"
)

// Request is one text to tokenize, identified by its position in the
// flattened prompt sequence. The index is assigned once at flattening
// time and never changes.
type Request struct {
	Index int
	Text  string
}

// Ticket is the opaque user data carried from StartAsync to the
// completion callback. It encodes everything the callback needs to
// resolve its own result slot: the request index and the wall-clock
// submission time.
type Ticket struct {
	Index int
	Start time.Time
}

// Record is one flattened per-prompt row of the benchmark table.
type Record struct {
	Prompt        string        `json:"prompt"`
	Compiled      time.Duration `json:"compiled"`
	Reference     time.Duration `json:"reference"`
	CompiledAsync time.Duration `json:"compiled_async"`
	PromptLen     int           `json:"prompt_len_chars"`
}

// AsyncRun is the outcome of one asynchronous benchmark: the filled
// result slots plus the total wall-clock elapsed time, measured from
// just before the first submission to just after the last completion
// was observed.
type AsyncRun struct {
	Times   []time.Duration `json:"times"`
	Elapsed time.Duration   `json:"elapsed"`
}

// Throughput returns requests per second for the whole run.
func (r *AsyncRun) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(len(r.Times)) / r.Elapsed.Seconds()
}
