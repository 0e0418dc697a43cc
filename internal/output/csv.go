/*
PURPOSE:
  Writes the per-prompt latency table to a CSV file.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Rows sorted by prompt length, ascending.
  - Derived ratio columns: compiled/reference and compiled-async/reference.

  Implementation-discovered:
  - Overwrite the file on each run (the reference tool did the same).

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/model.Record

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (crash resilience).
  - Mutex-guarded; the writer outlives the single-threaded runner today
    but the contract should not depend on that.

USAGE:
  w, err := output.NewLatencyWriter("latency_res_gpt-4o.csv")
  w.WriteAll(records)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If the CSV format changes, update header and record conversion.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update WriteAll mapping when Record struct changes.
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/daryltucker/tokbench/internal/model"
)

// LatencyWriter handles writing latency records to a CSV file.
type LatencyWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewLatencyWriter creates a new LatencyWriter.
// It overwrites the file if it exists.
func NewLatencyWriter(path string) (*LatencyWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)

	header := []string{
		"prompt", "compiled_s", "reference_s", "compiled_async_s",
		"prompt_len_chars", "compiled_vs_reference", "compiled_async_vs_reference",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &LatencyWriter{
		file:   f,
		writer: w,
	}, nil
}

// WriteAll writes the full record table, sorted by prompt length.
// The input slice is not modified.
func (lw *LatencyWriter) WriteAll(records []model.Record) error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	sorted := make([]model.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PromptLen < sorted[j].PromptLen
	})

	for _, r := range sorted {
		record := []string{
			r.Prompt,
			fmt.Sprintf("%.9f", r.Compiled.Seconds()),
			fmt.Sprintf("%.9f", r.Reference.Seconds()),
			fmt.Sprintf("%.9f", r.CompiledAsync.Seconds()),
			fmt.Sprintf("%d", r.PromptLen),
			fmt.Sprintf("%.6f", ratio(r.Compiled.Seconds(), r.Reference.Seconds())),
			fmt.Sprintf("%.6f", ratio(r.CompiledAsync.Seconds(), r.Reference.Seconds())),
		}
		if err := lw.writer.Write(record); err != nil {
			return err
		}
	}
	lw.writer.Flush()
	return lw.writer.Error()
}

// Close closes the underlying file.
func (lw *LatencyWriter) Close() error {
	lw.writer.Flush()
	return lw.file.Close()
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
