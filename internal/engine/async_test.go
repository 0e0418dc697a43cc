package engine

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/tokbench/internal/model"
)

func makeRequests(n int) []model.Request {
	reqs := make([]model.Request, n)
	for i := range reqs {
		reqs[i] = model.Request{Index: i, Text: strconv.Itoa(i)}
	}
	return reqs
}

// permutedBackend buffers submissions and completes them in a caller
// chosen order during WaitAll. It models a backend that reorders
// completions arbitrarily relative to submission order.
type permutedBackend struct {
	mu      sync.Mutex
	cb      Callback
	pending []model.Ticket
	permute func(n int) []int
}

func (b *permutedBackend) SetCallback(cb Callback) { b.cb = cb }

func (b *permutedBackend) StartAsync(text string, t model.Ticket) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, t)
}

func (b *permutedBackend) WaitAll() error {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, i := range b.permute(len(pending)) {
		b.cb(pending[i], nil)
	}
	return nil
}

func reverseOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = n - 1 - i
	}
	return order
}

func TestBenchmarkAsyncFillsEverySlotExactlyOnce(t *testing.T) {
	for _, n := range []int{1, 2, 7, 64} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			q := NewInferQueue(&stubCodec{}, 4)
			run, err := BenchmarkAsync(q, makeRequests(n))
			require.NoError(t, err)

			require.Len(t, run.Times, n)
			for i, elapsed := range run.Times {
				assert.Greater(t, elapsed, time.Duration(0), "slot %d left at sentinel", i)
			}
			assert.Greater(t, run.Elapsed, time.Duration(0))
		})
	}
}

func TestBenchmarkAsyncIsCompletionOrderIndependent(t *testing.T) {
	const n = 16

	backend := &permutedBackend{permute: reverseOrder}
	run, err := BenchmarkAsync(backend, makeRequests(n))
	require.NoError(t, err)

	require.Len(t, run.Times, n)
	for i, elapsed := range run.Times {
		assert.Greater(t, elapsed, time.Duration(0), "slot %d not written under reversed completions", i)
	}
}

func TestBenchmarkAsyncThroughputFormula(t *testing.T) {
	q := NewInferQueue(&stubCodec{}, 4)
	run, err := BenchmarkAsync(q, makeRequests(32))
	require.NoError(t, err)

	want := float64(len(run.Times)) / run.Elapsed.Seconds()
	assert.InEpsilon(t, want, run.Throughput(), 1e-9)
}

func TestBenchmarkAsyncAttributesDelaysToTheRightSlots(t *testing.T) {
	const step = 50 * time.Millisecond

	// Odd-indexed requests sleep for one step, even-indexed ones return
	// immediately. Whatever interleaving the queue picks, the elapsed
	// times must land on the matching slots.
	codec := &stubCodec{delayFor: indexDelay(step)}
	q := NewInferQueue(codec, 4)

	run, err := BenchmarkAsync(q, makeRequests(4))
	require.NoError(t, err)
	require.Len(t, run.Times, 4)

	for i, elapsed := range run.Times {
		if i%2 == 1 {
			assert.GreaterOrEqual(t, elapsed, step, "odd slot %d should include the delay", i)
		} else {
			assert.Less(t, elapsed, step, "even slot %d should complete well before one step", i)
		}
	}
}

func TestBenchmarkAsyncRejectsEmptyInput(t *testing.T) {
	q := NewInferQueue(&stubCodec{}, 2)
	_, err := BenchmarkAsync(q, nil)
	assert.Error(t, err)
}

func TestBenchmarkAsyncAbortsOnBackendError(t *testing.T) {
	q := NewInferQueue(&stubCodec{failOn: "5"}, 4)
	run, err := BenchmarkAsync(q, makeRequests(10))
	require.Error(t, err)
	assert.Nil(t, run, "no partial result on abort")
}
