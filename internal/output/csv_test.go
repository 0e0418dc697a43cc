package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/tokbench/internal/model"
)

func sampleRecords() []model.Record {
	return []model.Record{
		{Prompt: "medium prompt", Compiled: 2 * time.Millisecond, Reference: 4 * time.Millisecond, CompiledAsync: 1 * time.Millisecond, PromptLen: 13},
		{Prompt: "a", Compiled: 1 * time.Millisecond, Reference: 2 * time.Millisecond, CompiledAsync: 500 * time.Microsecond, PromptLen: 1},
		{Prompt: "the longest prompt of them all", Compiled: 6 * time.Millisecond, Reference: 3 * time.Millisecond, CompiledAsync: 3 * time.Millisecond, PromptLen: 30},
	}
}

func TestLatencyWriterSortsByPromptLengthAndDerivesRatios(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latency.csv")
	w, err := NewLatencyWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteAll(sampleRecords()))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 3 records

	assert.Equal(t, []string{
		"prompt", "compiled_s", "reference_s", "compiled_async_s",
		"prompt_len_chars", "compiled_vs_reference", "compiled_async_vs_reference",
	}, rows[0])

	// Rows sorted by prompt length ascending.
	var lengths []int
	for _, row := range rows[1:] {
		n, err := strconv.Atoi(row[4])
		require.NoError(t, err)
		lengths = append(lengths, n)
	}
	assert.Equal(t, []int{1, 13, 30}, lengths)

	// Ratio columns: compiled/reference for the shortest prompt is 0.5.
	ratio, err := strconv.ParseFloat(rows[1][5], 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, ratio, 1e-6)
	asyncRatio, err := strconv.ParseFloat(rows[1][6], 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, asyncRatio, 1e-6)
}

func TestLatencyWriterDoesNotMutateInputOrder(t *testing.T) {
	records := sampleRecords()
	path := filepath.Join(t.TempDir(), "latency.csv")
	w, err := NewLatencyWriter(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WriteAll(records))
	assert.Equal(t, "medium prompt", records[0].Prompt)
}

func TestJSONWriterEmitsOneLinePerRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latency.jsonl")
	w, err := NewJSONWriter(path)
	require.NoError(t, err)
	for _, r := range sampleRecords() {
		require.NoError(t, w.Write(r))
	}
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	assert.Equal(t, 3, lines)
	assert.Contains(t, string(data), `"prompt":"a"`)
}
