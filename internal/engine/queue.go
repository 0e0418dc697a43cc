/*
PURPOSE:
  Asynchronous infer queue: runs tokenization requests on background
  goroutines with a bounded number in flight, and delivers exactly one
  completion callback per submission.

REQUIREMENTS:
  User-specified:
  - StartAsync must not block, except for backpressure when every slot
    is busy.
  - WaitAll blocks until every submission has called back; calling it
    again after the queue is drained returns immediately.

  Implementation-discovered:
  - Completions run on whichever goroutine executed the request, not on
    the submitting goroutine; the callback must tolerate that.
  - The callback is registered once, before the first submission, so the
    workers observe it through the happens-before edge of the semaphore.

ARCHITECTURE INTEGRATION:
  - Wraps: internal/tokenizer.Codec
  - Driven by: internal/engine/async.go

ERROR HANDLING:
  - The first Encode error is recorded and returned from WaitAll; the
    callback still fires for the failed submission (with the error) so
    the exactly-once contract holds.

IMPLEMENTATION RULES:
  - Bound in-flight work with golang.org/x/sync/semaphore, one weight
    per slot; goroutine-per-request inside the bound.
  - No cancellation or timeouts: the queue assumes every request
    eventually completes.

USAGE:
  q := engine.NewInferQueue(codec, engine.HintThroughput.Jobs())
  q.SetCallback(func(t model.Ticket, err error) { ... })
  q.StartAsync("text", model.Ticket{Index: 0, Start: time.Now()})
  err := q.WaitAll()

SELF-HEALING INSTRUCTIONS:
  - If WaitAll hangs, a submission never completed; check that the codec
    cannot block forever.

RELATED FILES:
  - internal/engine/async.go
  - internal/tokenizer/codec.go

MAINTENANCE:
  - Update the hint mapping if a better slot heuristic is found.
*/

package engine

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/daryltucker/tokbench/internal/model"
	"github.com/daryltucker/tokbench/internal/tokenizer"
)

// Callback receives the completion notification for one submission.
// It is invoked exactly once per StartAsync call, possibly on a
// different goroutine than the submitter, and in no particular order.
type Callback func(t model.Ticket, err error)

// Hint selects the execution profile of the queue, mirroring the
// latency/throughput performance hints of inference runtimes.
type Hint string

const (
	HintLatency    Hint = "latency"
	HintThroughput Hint = "throughput"
)

// Jobs returns the number of in-flight slots for the hint.
func (h Hint) Jobs() int {
	procs := runtime.GOMAXPROCS(0)
	if h == HintThroughput {
		return procs
	}
	if procs < 2 {
		return 1
	}
	return procs / 2
}

// InferQueue executes Encode calls asynchronously with at most `jobs`
// requests in flight.
type InferQueue struct {
	codec tokenizer.Codec
	sem   *semaphore.Weighted
	jobs  int
	cb    Callback

	wg sync.WaitGroup

	mu  sync.Mutex
	err error
}

// NewInferQueue creates a queue over codec with the given number of
// in-flight slots. jobs < 1 is clamped to 1.
func NewInferQueue(codec tokenizer.Codec, jobs int) *InferQueue {
	if jobs < 1 {
		jobs = 1
	}
	return &InferQueue{
		codec: codec,
		sem:   semaphore.NewWeighted(int64(jobs)),
		jobs:  jobs,
	}
}

// Jobs returns the configured number of in-flight slots.
func (q *InferQueue) Jobs() int {
	return q.jobs
}

// SetCallback registers the completion callback. Must be called before
// the first StartAsync.
func (q *InferQueue) SetCallback(cb Callback) {
	q.cb = cb
}

// StartAsync submits one tokenization request. The ticket is carried
// through opaquely and handed back to the callback on completion.
// Blocks only when all in-flight slots are busy.
func (q *InferQueue) StartAsync(text string, t model.Ticket) {
	// Acquire cannot fail with a background context.
	_ = q.sem.Acquire(context.Background(), 1)
	q.wg.Add(1)

	go func() {
		defer q.wg.Done()
		defer q.sem.Release(1)

		_, err := q.codec.Encode(text)
		if err != nil {
			q.setErr(err)
		}
		if q.cb != nil {
			q.cb(t, err)
		}
	}()
}

// WaitAll blocks until every submitted request has completed and its
// callback has returned. Safe to call repeatedly; once drained it
// returns immediately. Returns the first backend error, if any.
func (q *InferQueue) WaitAll() error {
	q.wg.Wait()
	return q.Err()
}

// Err returns the first backend error observed so far.
func (q *InferQueue) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.err
}

func (q *InferQueue) setErr(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err == nil {
		q.err = err
	}
}
