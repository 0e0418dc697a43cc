/*
PURPOSE:
  Asynchronous benchmark harness. Submits every request without waiting
  for earlier ones to finish, attributes each completion's elapsed time
  back to the originating request, and reports aggregate throughput.

REQUIREMENTS:
  User-specified:
  - Completions arrive out of order and on other goroutines; correctness
    must not depend on completion order.
  - The run is complete only when every submission has called back.

  Implementation-discovered:
  - The result slots are partitioned by request index: each index has
    exactly one writer, so slot writes need no lock. The ticket is the
    only thing crossing the backend boundary.
  - Total elapsed spans first submission to last observed completion,
    which is what the throughput figure divides by.

ARCHITECTURE INTEGRATION:
  - Drives: any AsyncBackend (production: internal/engine.InferQueue)
  - Produces: internal/model.AsyncRun for internal/stats and internal/output

ERROR HANDLING:
  - Any backend error aborts the run with no partial result; unfilled
    sentinel slots would silently skew the aggregate statistics.

IMPLEMENTATION RULES:
  - Pre-allocate the slot array before the first submission.
  - One blocking point only: the final WaitAll drain.

USAGE:
  run, err := engine.BenchmarkAsync(queue, reqs)
  fmt.Println(run.Throughput())

SELF-HEALING INSTRUCTIONS:
  - An index collision means the backend delivered a duplicate
    completion; that is a backend contract violation, not harness state.

RELATED FILES:
  - internal/engine/queue.go
  - internal/model/types.go

MAINTENANCE:
  - Keep the submission loop free of per-request blocking.
*/

package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/daryltucker/tokbench/internal/model"
)

// AsyncBackend is the asynchronous half of the backend adapter
// contract: register a completion callback, submit requests, drain.
// Implementations must invoke the callback exactly once per StartAsync.
type AsyncBackend interface {
	SetCallback(Callback)
	StartAsync(text string, t model.Ticket)
	WaitAll() error
}

// BenchmarkAsync runs every request through the backend concurrently
// and returns the per-request latencies keyed by request index.
func BenchmarkAsync(backend AsyncBackend, reqs []model.Request) (*model.AsyncRun, error) {
	if len(reqs) == 0 {
		return nil, errors.New("async benchmark needs at least one request")
	}

	// Result slots, one per request, zero until its completion lands.
	// Each index is written by exactly one completion.
	times := make([]time.Duration, len(reqs))

	backend.SetCallback(func(t model.Ticket, err error) {
		if err != nil {
			// WaitAll surfaces the error; leave the slot untouched.
			return
		}
		times[t.Index] = time.Since(t.Start)
	})

	start := time.Now()
	for _, req := range reqs {
		backend.StartAsync(req.Text, model.Ticket{Index: req.Index, Start: time.Now()})
	}
	if err := backend.WaitAll(); err != nil {
		return nil, fmt.Errorf("async benchmark aborted: %w", err)
	}
	elapsed := time.Since(start)

	return &model.AsyncRun{Times: times, Elapsed: elapsed}, nil
}
