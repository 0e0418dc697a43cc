package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/tokbench/internal/model"
)

func TestDescribeMatchesPandasConventions(t *testing.T) {
	s := Describe([]float64{4, 1, 3, 2})

	assert.InDelta(t, 2.5, s.Mean, 1e-9)
	assert.InDelta(t, 1.2909944487, s.Std, 1e-9) // sample std, ddof=1
	assert.InDelta(t, 1.0, s.Min, 1e-9)
	assert.InDelta(t, 1.75, s.P25, 1e-9) // linear interpolation
	assert.InDelta(t, 2.5, s.P50, 1e-9)
	assert.InDelta(t, 3.25, s.P75, 1e-9)
	assert.InDelta(t, 4.0, s.Max, 1e-9)
}

func TestDescribeDoesNotMutateInput(t *testing.T) {
	vals := []float64{3, 1, 2}
	Describe(vals)
	assert.Equal(t, []float64{3, 1, 2}, vals)
}

func TestFPS(t *testing.T) {
	times := []time.Duration{100 * time.Millisecond, 100 * time.Millisecond}
	// 2 requests in 0.2s of summed latency = 10 FPS.
	assert.InDelta(t, 10.0, FPS(times), 1e-9)

	assert.Zero(t, FPS(nil))
}

func testRecords() []model.Record {
	return []model.Record{
		{Prompt: "aa", Compiled: 1 * time.Millisecond, Reference: 2 * time.Millisecond, CompiledAsync: 500 * time.Microsecond, PromptLen: 2},
		{Prompt: "bbbb", Compiled: 2 * time.Millisecond, Reference: 4 * time.Millisecond, CompiledAsync: 1 * time.Millisecond, PromptLen: 4},
		{Prompt: "c", Compiled: 3 * time.Millisecond, Reference: 6 * time.Millisecond, CompiledAsync: 2 * time.Millisecond, PromptLen: 1},
	}
}

func TestColumns(t *testing.T) {
	compiled, reference, compiledAsync, promptLen := Columns(testRecords())

	assert.Equal(t, []float64{0.001, 0.002, 0.003}, compiled)
	assert.Equal(t, []float64{0.002, 0.004, 0.006}, reference)
	assert.Equal(t, []float64{0.0005, 0.001, 0.002}, compiledAsync)
	assert.Equal(t, []float64{2, 4, 1}, promptLen)
}

func TestPrintWritesThroughputAndSummary(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, testRecords(), 1234.5)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "Sync:")
	assert.Contains(t, out, "Async:")
	assert.Contains(t, out, "1234.500")
	assert.Contains(t, out, "compiled_async_s")
	for _, row := range []string{"mean", "std", "min", "25%", "50%", "75%", "max"} {
		assert.True(t, strings.Contains(out, row), "summary table missing %q row", row)
	}
	assert.NotContains(t, out, "count", "describe output excludes the count row")
}
